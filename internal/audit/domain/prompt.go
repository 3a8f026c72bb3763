package domain

// DefaultMaxSourceChars caps how much source text is sent to the completion
// service. Truncation is a cost and latency control; anything past the cap
// is dropped, not chunked.
const DefaultMaxSourceChars = 20000

// systemRubric is the fixed audit instruction. It names the vulnerability
// classes of interest and mandates the exact JSON shape of the verdict.
const systemRubric = `You are an expert smart contract auditor. Analyze the Solidity code provided.
Focus on: re-entrancy, privileged-ownership abuse, honeypot patterns, and unlimited token approvals.

Return valid JSON ONLY with this exact structure:
{
  "riskScore": (number 0-100),
  "riskLevel": "Low" | "Medium" | "High",
  "summary": "A short, non-technical explanation.",
  "keyIssues": ["Short bullet point 1", "Short bullet point 2"]
}`

// Prompt is the two-message payload sent to the completion service.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt constructs the audit prompt from verified source text,
// truncating the source to maxChars raw characters from the start. A
// maxChars of zero or less falls back to DefaultMaxSourceChars.
func BuildPrompt(sourceText string, maxChars int) Prompt {
	if maxChars <= 0 {
		maxChars = DefaultMaxSourceChars
	}
	if len(sourceText) > maxChars {
		sourceText = sourceText[:maxChars]
	}
	return Prompt{
		System: systemRubric,
		User:   "Analyze this code:\n\n" + sourceText,
	}
}
