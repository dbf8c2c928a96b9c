package entity

// GasQuote is the current fee snapshot for one EVM network.
// Error is set instead of the fee fields when the network could not be queried.
type GasQuote struct {
	Network         string `json:"network"`
	Identifier      string `json:"identifier"`
	ChainID         uint64 `json:"chainId"`
	NativeSymbol    string `json:"nativeSymbol"`
	GasPriceGwei    string `json:"gasPriceGwei,omitempty"`
	BaseFeeGwei     string `json:"baseFeeGwei,omitempty"`
	PriorityFeeGwei string `json:"priorityFeeGwei,omitempty"`
	Error           string `json:"error,omitempty"`
}

// GasSnapshot groups quotes for all configured networks.
type GasSnapshot struct {
	Networks  []GasQuote `json:"networks"`
	Timestamp int64      `json:"timestamp"`
}
