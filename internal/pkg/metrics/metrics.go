package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the service. Collectors work
// unregistered, so tests can use New() without touching a registry.
type Metrics struct {
	PipelineRuns        *prometheus.CounterVec
	PairsFetched        prometheus.Counter
	PairsPassedFilter   prometheus.Counter
	PipelineDuration    prometheus.Histogram
	Assessments         *prometheus.CounterVec
	AssessmentFailures  *prometheus.CounterVec
	AssessmentLatency   *prometheus.HistogramVec
	BreakerStateChanges *prometheus.CounterVec
	CacheRequests       *prometheus.CounterVec
	GasFetchFailures    *prometheus.CounterVec
	ContractScans       *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_pipeline_runs_total",
			Help: "Total number of spike pipeline runs by outcome",
		}, []string{"outcome"}),
		PairsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spike_detector_pairs_fetched_total",
			Help: "Total number of unique pairs returned by the pair source",
		}),
		PairsPassedFilter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spike_detector_pairs_passed_filter_total",
			Help: "Total number of pairs that passed the hard filter",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spike_detector_pipeline_duration_seconds",
			Help:    "Time taken by a full spike pipeline run in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_assessments_total",
			Help: "Total number of security assessments by provider and label",
		}, []string{"provider", "label"}),
		AssessmentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_assessment_failures_total",
			Help: "Total number of security checks that fell back to the default assessment",
		}, []string{"provider"}),
		AssessmentLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spike_detector_assessment_latency_seconds",
			Help:    "Security check latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		BreakerStateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_breaker_state_changes_total",
			Help: "Total number of gas RPC circuit breaker state transitions per network",
		}, []string{"network", "to"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_cache_requests_total",
			Help: "Total number of cache lookups by cache and result",
		}, []string{"cache", "result"}),
		GasFetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_gas_fetch_failures_total",
			Help: "Total number of failed gas quote fetches per network",
		}, []string{"network"}),
		ContractScans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spike_detector_contract_scans_total",
			Help: "Total number of contract source scans by resulting label",
		}, []string{"label"}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.PipelineRuns,
		m.PairsFetched,
		m.PairsPassedFilter,
		m.PipelineDuration,
		m.Assessments,
		m.AssessmentFailures,
		m.AssessmentLatency,
		m.BreakerStateChanges,
		m.CacheRequests,
		m.GasFetchFailures,
		m.ContractScans,
	)
}
