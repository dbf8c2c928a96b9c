package entity

// Token identifies one side of a trading pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// TxnCounts holds buy and sell counts for one time bucket.
type TxnCounts struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Pair is a normalized DEX trading pair. Every numeric field is already defaulted
// to zero when the upstream omitted it, so scoring never checks for presence.
type Pair struct {
	ChainID        string    `json:"chainId"`
	DexID          string    `json:"dexId"`
	URL            string    `json:"url"`
	PairAddress    string    `json:"pairAddress"`
	BaseToken      Token     `json:"baseToken"`
	QuoteToken     Token     `json:"quoteToken"`
	PriceUSD       float64   `json:"priceUsd"`
	LiquidityUSD   float64   `json:"liquidityUsd"`
	VolumeM5       float64   `json:"volumeM5"`
	VolumeH1       float64   `json:"volumeH1"`
	VolumeH24      float64   `json:"volumeH24"`
	PriceChangeM5  float64   `json:"priceChangeM5"`
	PriceChangeH1  float64   `json:"priceChangeH1"`
	PriceChangeH24 float64   `json:"priceChangeH24"`
	TxnsM5         TxnCounts `json:"txnsM5"`
	MarketCap      float64   `json:"marketCap"`
	FDV            float64   `json:"fdv"`
	PairCreatedAt  int64     `json:"pairCreatedAt"` // epoch milliseconds
}
