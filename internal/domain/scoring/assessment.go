package scoring

import "spike_detector/internal/domain/entity"

// ApplyAssessment merges a security verdict into a scored pair. A risky or
// High Risk pair is never reported as spiking.
func ApplyAssessment(sp entity.ScoredPair, a entity.SecurityAssessment) entity.ScoredPair {
	if a.Label == "" {
		a = entity.DefaultAssessment()
	}
	sp.SafetyLabel = a.Label
	sp.SafetyEmoji = a.Emoji
	if sp.SafetyEmoji == "" {
		sp.SafetyEmoji = a.Label.Emoji()
	}
	sp.IsDevSold = a.IsDevSold
	if a.IsRisky || a.Label == entity.SafetyHighRisk {
		sp.IsSpiking = false
	}
	return sp
}
