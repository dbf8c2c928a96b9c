package service

import (
	"context"
	"sync"
	"time"

	"spike_detector/internal/app/port"
	"spike_detector/internal/domain/entity"
	"spike_detector/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const spikeFeedCacheKey = "spike_feed"

// cachedSpikeFeed implements port.SpikeFeedReader on top of a go-cache TTL cache.
type cachedSpikeFeed struct {
	svc        port.SpikeFeedService
	cache      *cache.Cache
	runTimeout time.Duration
	mu         sync.Mutex
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewCachedSpikeFeed wraps svc with a TTL cache. Failed feeds are never cached.
// runTimeout bounds each pipeline run; zero means no deadline.
func NewCachedSpikeFeed(
	logger *zap.Logger,
	svc port.SpikeFeedService,
	ttl, cleanupInterval, runTimeout time.Duration,
	m *metrics.Metrics,
) port.SpikeFeedReader {
	return &cachedSpikeFeed{
		svc:        svc,
		cache:      cache.New(ttl, cleanupInterval),
		runTimeout: runTimeout,
		metrics:    m,
		logger:     logger.Named("SpikeFeedCache"),
	}
}

// Get returns the cached feed, or runs the pipeline on a miss or when refresh is set.
// Concurrent misses share one pipeline run. The run is detached from ctx's
// cancellation; the cached feed is shared by all callers.
func (c *cachedSpikeFeed) Get(ctx context.Context, refresh bool) entity.SpikeFeed {
	if !refresh {
		if feed, ok := c.lookup(); ok {
			return feed
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !refresh {
		if feed, ok := c.lookup(); ok {
			return feed
		}
	}
	c.metrics.CacheRequests.WithLabelValues("spikes", "miss").Inc()

	runCtx, cancel := c.runContext(ctx)
	defer cancel()

	feed := c.svc.Run(runCtx)
	if feed.Failed() {
		c.logger.Warn("Not caching failed spike feed", zap.String("error", feed.Error))
		return feed
	}
	if err := runCtx.Err(); err != nil {
		// late security checks fell back to the default label
		c.logger.Warn("Not caching spike feed from an expired run", zap.Error(err))
		return feed
	}
	c.cache.Set(spikeFeedCacheKey, feed, cache.DefaultExpiration)
	return feed
}

func (c *cachedSpikeFeed) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if c.runTimeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, c.runTimeout)
}

func (c *cachedSpikeFeed) lookup() (entity.SpikeFeed, bool) {
	if cached, found := c.cache.Get(spikeFeedCacheKey); found {
		c.metrics.CacheRequests.WithLabelValues("spikes", "hit").Inc()
		return cached.(entity.SpikeFeed), true
	}
	return entity.SpikeFeed{}, false
}
