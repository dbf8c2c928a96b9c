package scoring

import (
	"strings"

	"spike_detector/internal/domain/entity"
)

// MarketCap returns the pair's market cap, falling back to FDV when the
// dedicated field is absent.
func MarketCap(p entity.Pair) float64 {
	if p.MarketCap > 0 {
		return p.MarketCap
	}
	return p.FDV
}

// PassesHardFilter keeps micro-caps with enough liquidity whose name is not on
// the blocklist.
func PassesHardFilter(p entity.Pair, marketCapUSD float64, t Thresholds) bool {
	if marketCapUSD > t.MaxMarketCapUSD {
		return false
	}
	if p.LiquidityUSD < t.MinLiquidityUSD {
		return false
	}
	name := strings.ToLower(p.BaseToken.Name)
	for _, blocked := range t.NameBlocklist {
		if blocked != "" && strings.Contains(name, strings.ToLower(blocked)) {
			return false
		}
	}
	return true
}
