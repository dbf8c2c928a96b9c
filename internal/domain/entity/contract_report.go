package entity

// Severity of a static-analysis finding.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ContractFinding is one matched pattern in submitted contract source.
type ContractFinding struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Deduction   int      `json:"deduction"`
	Line        int      `json:"line"`
}

// ContractReport is the result of a static pattern scan.
type ContractReport struct {
	Score    int               `json:"score"`
	Label    SafetyLabel       `json:"label"`
	Emoji    string            `json:"emoji"`
	Findings []ContractFinding `json:"findings"`
}
