package service

import (
	"context"
	"fmt"
	"time"

	"spike_detector/internal/app/port"
	"spike_detector/internal/config"
	"spike_detector/internal/domain/entity"
	"spike_detector/internal/pkg/metrics"
	"spike_detector/internal/pkg/utils"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	gasCacheKey       = "gas_snapshot"
	gweiDisplayDigits = 3
)

// gasServiceImpl implements port.GasService.
type gasServiceImpl struct {
	networks       port.NetworkDefinitionProvider
	readers        port.GasReaderProvider
	requestTimeout time.Duration
	breakers       map[string]*gobreaker.CircuitBreaker
	cache          *cache.Cache
	now            func() time.Time
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewGasService creates the gas dashboard service. Every active network gets its
// own circuit breaker, so a dead RPC only affects that network's quote.
func NewGasService(
	logger *zap.Logger,
	networks port.NetworkDefinitionProvider,
	readers port.GasReaderProvider,
	cfg config.GasConfig,
	ttl, cleanupInterval time.Duration,
	now func() time.Time,
	m *metrics.Metrics,
) port.GasService {
	if now == nil {
		now = time.Now
	}
	s := &gasServiceImpl{
		networks:       networks,
		readers:        readers,
		requestTimeout: cfg.RequestTimeout(),
		cache:          cache.New(ttl, cleanupInterval),
		now:            now,
		metrics:        m,
		logger:         logger.Named("GasService"),
	}
	defs := networks.GetAllNetworkDefinitions()
	s.breakers = make(map[string]*gobreaker.CircuitBreaker, len(defs))
	for _, def := range defs {
		s.breakers[def.Identifier] = s.newBreaker(def.Identifier, cfg)
	}
	return s
}

func (s *gasServiceImpl) newBreaker(network string, cfg config.GasConfig) *gobreaker.CircuitBreaker {
	maxFailures := cfg.BreakerMaxFailures
	st := gobreaker.Settings{
		Name:    network,
		Timeout: cfg.BreakerOpen(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return maxFailures > 0 && counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			s.logger.Warn("Circuit breaker state changed",
				zap.String("network", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			s.metrics.BreakerStateChanges.WithLabelValues(name, to.String()).Inc()
		},
	}
	return gobreaker.NewCircuitBreaker(st)
}

// GetGasFees queries every active network concurrently. A failing network yields a
// quote with Error set; the other quotes are unaffected. Quotes keep configured order.
// The snapshot is cached, so the RPC calls ignore ctx's cancellation and rely on the
// per-network timeout instead.
func (s *gasServiceImpl) GetGasFees(ctx context.Context, refresh bool) entity.GasSnapshot {
	if !refresh {
		if cached, found := s.cache.Get(gasCacheKey); found {
			s.metrics.CacheRequests.WithLabelValues("gas", "hit").Inc()
			return cached.(entity.GasSnapshot)
		}
	}
	s.metrics.CacheRequests.WithLabelValues("gas", "miss").Inc()

	ctx = context.WithoutCancel(ctx)
	defs := s.networks.GetAllNetworkDefinitions()
	quotes := make([]entity.GasQuote, len(defs))

	g := new(errgroup.Group)
	for i, def := range defs {
		g.Go(func() error {
			quotes[i] = s.quote(ctx, def)
			return nil
		})
	}
	_ = g.Wait()

	snapshot := entity.GasSnapshot{Networks: quotes, Timestamp: s.now().UnixMilli()}
	s.cache.Set(gasCacheKey, snapshot, cache.DefaultExpiration)
	return snapshot
}

func (s *gasServiceImpl) quote(ctx context.Context, def entity.NetworkDefinition) entity.GasQuote {
	q := entity.GasQuote{
		Network:      def.Name,
		Identifier:   def.Identifier,
		ChainID:      def.ChainID,
		NativeSymbol: def.NativeSymbol,
	}

	callCtx := ctx
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	var err error
	if breaker, ok := s.breakers[def.Identifier]; ok {
		_, err = breaker.Execute(func() (interface{}, error) {
			return nil, s.fill(callCtx, def, &q)
		})
	} else {
		err = s.fill(callCtx, def, &q)
	}
	if err != nil {
		s.logger.Warn("Gas quote failed", zap.String("network", def.Identifier), zap.Error(err))
		s.metrics.GasFetchFailures.WithLabelValues(def.Identifier).Inc()
		return entity.GasQuote{
			Network:      q.Network,
			Identifier:   q.Identifier,
			ChainID:      q.ChainID,
			NativeSymbol: q.NativeSymbol,
			Error:        err.Error(),
		}
	}
	return q
}

func (s *gasServiceImpl) fill(ctx context.Context, def entity.NetworkDefinition, q *entity.GasQuote) error {
	reader, err := s.readers.GetReader(ctx, def)
	if err != nil {
		return err
	}

	gasPrice, err := reader.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("eth_gasPrice: %w", err)
	}
	q.GasPriceGwei = utils.FormatGwei(gasPrice, gweiDisplayDigits)

	// base fee and tip are absent on pre-London chains; missing values are not an error
	if header, err := reader.HeaderByNumber(ctx, nil); err != nil {
		s.logger.Debug("Latest header unavailable", zap.String("network", def.Identifier), zap.Error(err))
	} else if header.BaseFee != nil {
		q.BaseFeeGwei = utils.FormatGwei(header.BaseFee, gweiDisplayDigits)
	}
	if tip, err := reader.SuggestGasTipCap(ctx); err != nil {
		s.logger.Debug("Priority fee unavailable", zap.String("network", def.Identifier), zap.Error(err))
	} else {
		q.PriorityFeeGwei = utils.FormatGwei(tip, gweiDisplayDigits)
	}
	return nil
}
