// Package scoring holds the pure stages of the spike pipeline: hard filtering,
// heuristic scoring, classification, tagging and ranking.
package scoring

// Thresholds are the product-tunable limits of the pipeline.
type Thresholds struct {
	MaxMarketCapUSD float64
	MinLiquidityUSD float64
	// NameBlocklist entries are matched as lower-case substrings of the token name.
	NameBlocklist []string
	MaxResults    int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxMarketCapUSD: 1_500_000,
		MinLiquidityUSD: 2_500,
		NameBlocklist: []string{
			"wrapped", "bitcoin", "ethereum", "solana", "tether", "usd coin",
			"binance", "weth", "wbtc", "wsol", "staked",
		},
		MaxResults: 60,
	}
}
