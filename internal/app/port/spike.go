package port

import (
	"context"

	"spike_detector/internal/domain/entity"
)

// PairSource yields the current candidate pairs, already normalized.
// An error means the whole upstream fetch failed.
type PairSource interface {
	FetchPairs(ctx context.Context) ([]entity.Pair, error)
}

// SecurityAssessor produces a safety verdict for one pair. It never fails:
// any provider problem yields entity.DefaultAssessment().
type SecurityAssessor interface {
	Assess(ctx context.Context, pair entity.Pair) entity.SecurityAssessment
}

// SpikeFeedService runs the detection pipeline once.
type SpikeFeedService interface {
	Run(ctx context.Context) entity.SpikeFeed
}

// SpikeFeedReader serves spike feeds, possibly from a cache.
type SpikeFeedReader interface {
	Get(ctx context.Context, refresh bool) entity.SpikeFeed
}

// GasService returns gas quotes for every active network.
type GasService interface {
	GetGasFees(ctx context.Context, refresh bool) entity.GasSnapshot
}
