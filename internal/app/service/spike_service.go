package service

import (
	"context"
	"time"

	"spike_detector/internal/app/port"
	"spike_detector/internal/domain/entity"
	"spike_detector/internal/domain/scoring"
	"spike_detector/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrMsgFetchFailed is the error marker returned when the pair source is unavailable.
const ErrMsgFetchFailed = "Failed to fetch spike data"

// spikeServiceImpl implements port.SpikeFeedService.
type spikeServiceImpl struct {
	source        port.PairSource
	assessor      port.SecurityAssessor
	thresholds    scoring.Thresholds
	maxConcurrent int
	now           func() time.Time
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewSpikeService creates the spike pipeline. now may be nil, in which case
// time.Now is used.
func NewSpikeService(
	logger *zap.Logger,
	source port.PairSource,
	assessor port.SecurityAssessor,
	thresholds scoring.Thresholds,
	maxConcurrent int,
	now func() time.Time,
	m *metrics.Metrics,
) port.SpikeFeedService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if now == nil {
		now = time.Now
	}
	return &spikeServiceImpl{
		source:        source,
		assessor:      assessor,
		thresholds:    thresholds,
		maxConcurrent: maxConcurrent,
		now:           now,
		metrics:       m,
		logger:        logger.Named("SpikeService"),
	}
}

// Run fetches, filters, scores, enriches and ranks pairs once.
func (s *spikeServiceImpl) Run(ctx context.Context) entity.SpikeFeed {
	started := time.Now()
	defer func() {
		s.metrics.PipelineDuration.Observe(time.Since(started).Seconds())
	}()

	pairs, err := s.source.FetchPairs(ctx)
	if err != nil {
		s.logger.Error("Pair source unavailable", zap.Error(err))
		s.metrics.PipelineRuns.WithLabelValues("upstream_error").Inc()
		return entity.SpikeFeed{
			Pairs:     []entity.ScoredPair{},
			Timestamp: s.now().UnixMilli(),
			Error:     ErrMsgFetchFailed,
		}
	}
	s.metrics.PairsFetched.Add(float64(len(pairs)))

	now := s.now()
	candidates := make([]entity.ScoredPair, 0, len(pairs))
	for _, p := range pairs {
		mcap := scoring.MarketCap(p)
		if !scoring.PassesHardFilter(p, mcap, s.thresholds) {
			continue
		}
		candidates = append(candidates, scoring.Score(p, mcap, now))
	}
	s.metrics.PairsPassedFilter.Add(float64(len(candidates)))

	assessments := s.enrich(ctx, candidates)
	for i := range candidates {
		candidates[i] = scoring.ApplyAssessment(candidates[i], assessments[i])
	}

	ranked := scoring.Rank(candidates, s.thresholds.MaxResults)
	s.logger.Info("Spike pipeline finished",
		zap.Int("fetched", len(pairs)),
		zap.Int("passedFilter", len(candidates)),
		zap.Int("returned", len(ranked)),
		zap.Duration("took", time.Since(started)))
	s.metrics.PipelineRuns.WithLabelValues("ok").Inc()

	return entity.SpikeFeed{Pairs: ranked, Timestamp: s.now().UnixMilli()}
}

// enrich assesses every candidate concurrently. Result i belongs to candidate i;
// no task returns an error, so one slow or failing check never cancels the others.
func (s *spikeServiceImpl) enrich(ctx context.Context, candidates []entity.ScoredPair) []entity.SecurityAssessment {
	assessments := make([]entity.SecurityAssessment, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(s.maxConcurrent)
	for i := range candidates {
		g.Go(func() error {
			assessments[i] = s.assessor.Assess(ctx, candidates[i].Pair)
			return nil
		})
	}
	_ = g.Wait()
	return assessments
}
