package entity

// SafetyLabel is the three-level verdict of a security check.
type SafetyLabel string

const (
	SafetySafe     SafetyLabel = "Safe"
	SafetyWarning  SafetyLabel = "Warning"
	SafetyHighRisk SafetyLabel = "High Risk"
)

// Emoji returns the badge shown next to the label.
func (l SafetyLabel) Emoji() string {
	switch l {
	case SafetySafe:
		return "✅"
	case SafetyHighRisk:
		return "🚨"
	default:
		return "⚠️"
	}
}

// SecurityAssessment is the outcome of checking one pair against a risk service.
type SecurityAssessment struct {
	Label     SafetyLabel `json:"label"`
	Emoji     string      `json:"emoji"`
	IsRisky   bool        `json:"isRisky"`
	IsDevSold bool        `json:"isDevSold"`
}

// NewAssessment builds an assessment with the emoji matching its label.
func NewAssessment(label SafetyLabel, risky, devSold bool) SecurityAssessment {
	return SecurityAssessment{Label: label, Emoji: label.Emoji(), IsRisky: risky, IsDevSold: devSold}
}

// DefaultAssessment is used for unsupported chains and for any failed check.
// It is deliberately neither Safe nor High Risk.
func DefaultAssessment() SecurityAssessment {
	return NewAssessment(SafetyWarning, false, false)
}
