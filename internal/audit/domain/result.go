package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// neutralScore is used when the model omits or mangles riskScore.
const neutralScore = 50

// rawAssessment tolerates the shapes models actually emit: riskScore as a
// number or a quoted number, missing fields, extra fields.
type rawAssessment struct {
	RiskScore json.RawMessage `json:"riskScore"`
	RiskLevel string          `json:"riskLevel"`
	Summary   string          `json:"summary"`
	KeyIssues []string        `json:"keyIssues"`
}

// ParseAssessment validates and normalizes raw completion output into a
// RiskAssessment. It never fails: malformed output degrades to a SystemError
// assessment with a diagnostic summary, and individual bad fields are
// coerced or defaulted.
func ParseAssessment(raw string) RiskAssessment {
	var parsed rawAssessment
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return RiskAssessment{
			RiskScore: neutralScore,
			RiskLevel: RiskSystemError,
			Summary:   "The audit model returned output that could not be parsed. Please try again.",
			KeyIssues: []string{},
		}
	}

	out := RiskAssessment{
		RiskScore: coerceScore(parsed.RiskScore),
		RiskLevel: RiskLevel(parsed.RiskLevel),
		Summary:   strings.TrimSpace(parsed.Summary),
		KeyIssues: parsed.KeyIssues,
	}

	if !ValidRiskLevel(out.RiskLevel) {
		out.RiskLevel = RiskUnknown
	}
	if out.Summary == "" {
		out.Summary = "No summary was provided for this contract."
	}
	if out.KeyIssues == nil {
		out.KeyIssues = []string{}
	}
	return out
}

// coerceScore accepts a JSON number or a numeric string and clamps the
// result to [0,100]. Anything else yields the neutral score.
func coerceScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return neutralScore
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return neutralScore
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return neutralScore
		}
		f = parsed
	}

	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// extractJSON pulls the JSON object out of a completion that may be wrapped
// in markdown fences or surrounding prose, despite the json_object
// directive.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
