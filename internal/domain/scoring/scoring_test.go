package scoring

import (
	"math/rand"
	"testing"
	"time"

	"spike_detector/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func examplePair() entity.Pair {
	return entity.Pair{
		ChainID:       "solana",
		BaseToken:     entity.Token{Name: "Test Coin", Symbol: "TEST", Address: "abc123pump"},
		LiquidityUSD:  10000,
		VolumeM5:      600,
		VolumeH1:      1200,
		PriceChangeM5: 3,
		PriceChangeH1: 5,
		TxnsM5:        entity.TxnCounts{Buys: 8, Sells: 3},
		MarketCap:     500000,
		PairCreatedAt: testNow.Add(-2 * time.Hour).UnixMilli(),
	}
}

func TestScore_EndToEndExample(t *testing.T) {
	p := examplePair()
	mcap := MarketCap(p)

	require.True(t, PassesHardFilter(p, mcap, DefaultThresholds()))

	sp := Score(p, mcap, testNow)
	assert.InDelta(t, 6.0, sp.VolumeVelocity, 1e-9)
	assert.True(t, sp.IsSpiking)
	assert.False(t, sp.IsHeatingUp)
	assert.True(t, sp.IsPump)
	assert.False(t, sp.IsAI)
	assert.InDelta(t, 2.0, sp.PairAgeHours, 1e-9)
	// accel 20 (600 > 200, > 400, not > 800) + velocity 10 + momentum 5
	// + buys 5 + buy/sell ratio 10 + newness 10.
	// 65 is wrong for this pair: it counts the 8x accel step, and 600 is not > 800.
	assert.Equal(t, 60, sp.SpikeScore)
	assert.Equal(t, entity.SafetyWarning, sp.SafetyLabel)
}

func TestSpikeScore_Components(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *entity.Pair)
		want   int
	}{
		{
			name:   "empty pair only gets nothing",
			mutate: func(p *entity.Pair) { *p = entity.Pair{} },
			want:   0,
		},
		{
			name: "full volume acceleration",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{VolumeM5: 900, VolumeH1: 1200}
			},
			want: 30,
		},
		{
			name: "velocity above 15",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{LiquidityUSD: 1000, VolumeM5: 200, VolumeH1: 100000}
			},
			want: 20,
		},
		{
			name: "all price momentum",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{PriceChangeM5: 11, PriceChangeH1: 21}
			},
			want: 20,
		},
		{
			name: "all buy pressure",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{TxnsM5: entity.TxnCounts{Buys: 21, Sells: 10}}
			},
			want: 20,
		},
		{
			name: "between 24h and 48h old",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{PairCreatedAt: testNow.Add(-30 * time.Hour).UnixMilli()}
			},
			want: 5,
		},
		{
			name: "older than 48h",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{PairCreatedAt: testNow.Add(-72 * time.Hour).UnixMilli()}
			},
			want: 0,
		},
		{
			name: "everything maxed caps at 100",
			mutate: func(p *entity.Pair) {
				*p = entity.Pair{
					LiquidityUSD:  1000,
					VolumeM5:      500,
					VolumeH1:      600,
					PriceChangeM5: 50,
					PriceChangeH1: 50,
					TxnsM5:        entity.TxnCounts{Buys: 100, Sells: 1},
					PairCreatedAt: testNow.Add(-time.Hour).UnixMilli(),
				}
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := examplePair()
			tt.mutate(&p)
			assert.Equal(t, tt.want, SpikeScore(p, testNow))
		})
	}
}

func TestSpikeScore_BoundedAndTiersExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		p := entity.Pair{
			LiquidityUSD:  rng.Float64() * 50000,
			VolumeM5:      rng.Float64() * 20000,
			VolumeH1:      rng.Float64() * 100000,
			PriceChangeM5: rng.Float64()*200 - 100,
			PriceChangeH1: rng.Float64()*400 - 200,
			TxnsM5:        entity.TxnCounts{Buys: rng.Intn(500), Sells: rng.Intn(500)},
			PairCreatedAt: testNow.Add(-time.Duration(rng.Intn(200)) * time.Hour).UnixMilli(),
		}
		if i%7 == 0 {
			p.LiquidityUSD = 0
		}
		sp := Score(p, MarketCap(p), testNow)
		require.GreaterOrEqual(t, sp.SpikeScore, 0)
		require.LessOrEqual(t, sp.SpikeScore, 100)
		require.False(t, sp.IsSpiking && sp.IsHeatingUp, "pair %d is both spiking and heating up", i)
		require.GreaterOrEqual(t, sp.PairAgeHours, 0.0)
	}
}

func TestVolumeVelocity_ZeroLiquidity(t *testing.T) {
	p := entity.Pair{LiquidityUSD: 0, VolumeM5: 1_000_000, PriceChangeM5: 50}
	sp := Score(p, 0, testNow)
	assert.Zero(t, sp.VolumeVelocity)
	assert.False(t, sp.IsSpiking)
	assert.False(t, sp.IsHeatingUp)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		velocity, change float64
		spiking, heating bool
	}{
		{6, 3, true, false},
		{6, 2, false, false},
		{5, 3, false, true},
		{3, 0, false, true},
		{2.99, 10, false, false},
		{20, -5, false, false},
	}
	for _, tt := range tests {
		spiking, heating := Classify(tt.velocity, tt.change)
		assert.Equal(t, tt.spiking, spiking, "velocity=%v change=%v", tt.velocity, tt.change)
		assert.Equal(t, tt.heating, heating, "velocity=%v change=%v", tt.velocity, tt.change)
	}
}

func TestPassesHardFilter(t *testing.T) {
	th := DefaultThresholds()

	t.Run("above market cap ceiling", func(t *testing.T) {
		p := examplePair()
		assert.False(t, PassesHardFilter(p, 2_000_000, th))
	})
	t.Run("below liquidity floor", func(t *testing.T) {
		p := examplePair()
		p.LiquidityUSD = 1_000
		assert.False(t, PassesHardFilter(p, MarketCap(p), th))
	})
	t.Run("blocklisted name", func(t *testing.T) {
		p := examplePair()
		p.BaseToken.Name = "Wrapped Ether"
		assert.False(t, PassesHardFilter(p, MarketCap(p), th))
	})
	t.Run("custom thresholds", func(t *testing.T) {
		p := examplePair()
		custom := Thresholds{MaxMarketCapUSD: 100_000, MinLiquidityUSD: 100}
		assert.False(t, PassesHardFilter(p, MarketCap(p), custom))
		p.MarketCap = 50_000
		assert.True(t, PassesHardFilter(p, MarketCap(p), custom))
	})
}

func TestMarketCap_FallsBackToFDV(t *testing.T) {
	assert.Equal(t, 10.0, MarketCap(entity.Pair{MarketCap: 10, FDV: 20}))
	assert.Equal(t, 20.0, MarketCap(entity.Pair{FDV: 20}))
}

func TestTags(t *testing.T) {
	tests := []struct {
		token      entity.Token
		ai, pumped bool
	}{
		{entity.Token{Name: "Test Coin", Symbol: "TEST", Address: "abcpump"}, false, true},
		{entity.Token{Name: "Rain Drops", Symbol: "RAIN", Address: "0x1"}, false, false},
		{entity.Token{Name: "Virtual AI", Symbol: "VAI", Address: "0x2"}, true, false},
		{entity.Token{Name: "Agent Smith", Symbol: "SMITH", Address: "0x3"}, true, false},
		{entity.Token{Name: "Thing", Symbol: "AIXBT", Address: "xyzPUMP"}, true, true},
	}
	for _, tt := range tests {
		p := entity.Pair{BaseToken: tt.token}
		assert.Equal(t, tt.ai, IsAI(p), tt.token.Name)
		assert.Equal(t, tt.pumped, IsPump(p), tt.token.Name)
	}
}

func TestRank_OrderStabilityAndTruncation(t *testing.T) {
	pairs := []entity.ScoredPair{
		{Pair: entity.Pair{PairAddress: "a"}, SpikeScore: 50},
		{Pair: entity.Pair{PairAddress: "b"}, SpikeScore: 10, IsHeatingUp: true},
		{Pair: entity.Pair{PairAddress: "c"}, SpikeScore: 50},
		{Pair: entity.Pair{PairAddress: "d"}, SpikeScore: 5, IsSpiking: true},
		{Pair: entity.Pair{PairAddress: "e"}, SpikeScore: 70},
	}

	ranked := Rank(pairs, 60)
	got := make([]string, len(ranked))
	for i, sp := range ranked {
		got[i] = sp.PairAddress
	}
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, got)
	assert.Equal(t, "a", pairs[0].PairAddress, "input must not be reordered")
}

func TestRank_TruncatesHead(t *testing.T) {
	pairs := make([]entity.ScoredPair, 100)
	for i := range pairs {
		pairs[i] = entity.ScoredPair{SpikeScore: i}
	}
	ranked := Rank(pairs, 60)
	require.Len(t, ranked, 60)
	assert.Equal(t, 99, ranked[0].SpikeScore)
	assert.Equal(t, 40, ranked[59].SpikeScore)
}

func TestApplyAssessment(t *testing.T) {
	sp := Score(examplePair(), 500000, testNow)
	require.True(t, sp.IsSpiking)

	risky := ApplyAssessment(sp, entity.NewAssessment(entity.SafetyWarning, true, true))
	assert.False(t, risky.IsSpiking)
	assert.True(t, risky.IsDevSold)
	assert.Equal(t, entity.SafetyWarning, risky.SafetyLabel)

	high := ApplyAssessment(sp, entity.SecurityAssessment{Label: entity.SafetyHighRisk})
	assert.False(t, high.IsSpiking)
	assert.Equal(t, "🚨", high.SafetyEmoji)

	safe := ApplyAssessment(sp, entity.NewAssessment(entity.SafetySafe, false, false))
	assert.True(t, safe.IsSpiking)
	assert.Equal(t, "✅", safe.SafetyEmoji)
}
