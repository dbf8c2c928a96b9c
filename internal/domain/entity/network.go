package entity

// NetworkDefinition describes an EVM network the service knows about.
// It drives both the gas dashboard (RPC endpoints) and the GoPlus chain-id lookup
// (DEXScreenerChainID -> ChainID).
type NetworkDefinition struct {
	ChainID            uint64   `json:"chainId" yaml:"chainId"`
	Name               string   `json:"name" yaml:"name"`
	Identifier         string   `json:"identifier" yaml:"identifier"`
	NativeSymbol       string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	PrimaryRPCURL      string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs    []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
	BlockExplorerURL   string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	DEXScreenerChainID string   `json:"dexScreenerChainId" yaml:"dexScreenerChainId"`
	// SecurityChecks enables GoPlus token-security lookups for pairs on this network.
	SecurityChecks bool `json:"securityChecks" yaml:"securityChecks"`
}
