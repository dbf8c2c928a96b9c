package provider

import (
	"context"
	"fmt"
	"strings"

	"spike_detector/internal/app/port"
	"spike_detector/internal/client"
	"spike_detector/internal/domain/entity"
	dexscreener_entity "spike_detector/internal/entity"
	"spike_detector/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type dexScreenerPairSource struct {
	client  client.DEXScreenerClient
	queries []string
	chains  map[string]struct{}
	logger  *zap.Logger
}

// NewDexScreenerPairSource creates a PairSource that runs every query against the
// DEX Screener search endpoint. An empty chains list accepts every chain.
func NewDexScreenerPairSource(c client.DEXScreenerClient, queries, chains []string, logger *zap.Logger) port.PairSource {
	return &dexScreenerPairSource{
		client:  c,
		queries: queries,
		chains:  utils.LowerSet(chains),
		logger:  logger.Named("PairSource"),
	}
}

// FetchPairs runs all queries concurrently. Any failed query fails the whole fetch.
func (s *dexScreenerPairSource) FetchPairs(ctx context.Context) ([]entity.Pair, error) {
	if len(s.queries) == 0 {
		return nil, fmt.Errorf("no search queries configured")
	}

	results := make([][]dexscreener_entity.PairData, len(s.queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, query := range s.queries {
		g.Go(func() error {
			pairs, err := s.client.SearchPairs(gctx, query)
			if err != nil {
				return fmt.Errorf("search %q: %w", query, err)
			}
			results[i] = pairs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("Pair search failed", zap.Error(err))
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]entity.Pair, 0)
	skippedChain := 0
	for _, batch := range results {
		for _, raw := range batch {
			if len(s.chains) > 0 {
				if _, ok := s.chains[strings.ToLower(raw.ChainID)]; !ok {
					skippedChain++
					continue
				}
			}
			key := strings.ToLower(raw.ChainID) + ":" + strings.ToLower(raw.PairAddress)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, NormalizePair(raw))
		}
	}

	s.logger.Debug("Fetched pairs",
		zap.Int("queries", len(s.queries)),
		zap.Int("unique", len(out)),
		zap.Int("skippedChain", skippedChain))
	return out, nil
}

// NormalizePair converts the DEX Screener wire record into the domain pair,
// defaulting every missing number to zero.
func NormalizePair(raw dexscreener_entity.PairData) entity.Pair {
	return entity.Pair{
		ChainID:     raw.ChainID,
		DexID:       raw.DexID,
		URL:         raw.URL,
		PairAddress: raw.PairAddress,
		BaseToken: entity.Token{
			Address: raw.BaseToken.Address,
			Name:    raw.BaseToken.Name,
			Symbol:  raw.BaseToken.Symbol,
		},
		QuoteToken: entity.Token{
			Address: raw.QuoteToken.Address,
			Name:    raw.QuoteToken.Name,
			Symbol:  raw.QuoteToken.Symbol,
		},
		PriceUSD: utils.ParseFloatOrZero(raw.PriceUsd),
		LiquidityUSD: utils.SafeDerefFloat64(raw.Liquidity, func(l dexscreener_entity.DEXLiquidity) float64 {
			return l.Usd
		}),
		VolumeM5:       raw.Volume.M5,
		VolumeH1:       raw.Volume.H1,
		VolumeH24:      raw.Volume.H24,
		PriceChangeM5:  raw.PriceChange.M5,
		PriceChangeH1:  raw.PriceChange.H1,
		PriceChangeH24: raw.PriceChange.H24,
		TxnsM5:         entity.TxnCounts{Buys: raw.Txns.M5.Buys, Sells: raw.Txns.M5.Sells},
		MarketCap:      raw.MarketCap,
		FDV:            raw.Fdv,
		PairCreatedAt:  raw.PairCreatedAt,
	}
}
