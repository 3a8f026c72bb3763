// Package domain contains the business logic for contract risk audits.
package domain

// RiskLevel is the closed set of verdict levels. Unknown is reserved for
// "could not obtain source" and SystemError for infrastructure or
// configuration failures, so clients never display a system failure as a
// genuine model verdict.
type RiskLevel string

const (
	RiskLow         RiskLevel = "Low"
	RiskMedium      RiskLevel = "Medium"
	RiskHigh        RiskLevel = "High"
	RiskUnknown     RiskLevel = "Unknown"
	RiskSystemError RiskLevel = "SystemError"
)

// ValidRiskLevel reports whether l is a genuine model verdict level.
func ValidRiskLevel(l RiskLevel) bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// RiskAssessment is the canonical audit result returned to every client
// surface (extension badge, popup, web front-end). The field names are the
// wire contract and must not change.
type RiskAssessment struct {
	RiskScore int       `json:"riskScore"` // 0 (safe) .. 100 (maximally dangerous)
	RiskLevel RiskLevel `json:"riskLevel"`
	Summary   string    `json:"summary"`
	KeyIssues []string  `json:"keyIssues"`
}

// AuditRequest is the inbound request body for an audit.
type AuditRequest struct {
	ContractAddress string `json:"contractAddress"`
}
