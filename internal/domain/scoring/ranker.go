package scoring

import (
	"sort"

	"spike_detector/internal/domain/entity"
)

// Rank stable-sorts by (IsSpiking, IsHeatingUp, SpikeScore) descending and keeps
// at most limit entries. The input slice is not modified.
func Rank(pairs []entity.ScoredPair, limit int) []entity.ScoredPair {
	ranked := make([]entity.ScoredPair, len(pairs))
	copy(ranked, pairs)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsSpiking != b.IsSpiking {
			return a.IsSpiking
		}
		if a.IsHeatingUp != b.IsHeatingUp {
			return a.IsHeatingUp
		}
		return a.SpikeScore > b.SpikeScore
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
