package networkdefinition

import (
	"strings"

	"spike_detector/internal/domain/entity"

	"go.uber.org/zap"
)

// NetworkDefinitionProvider provides the EVM network definitions enabled by configuration.
type NetworkDefinitionProvider struct {
	logger            *zap.Logger
	allNetworkDefs    map[string]entity.NetworkDefinition
	activeNetworkDefs []entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:            1,
		Name:               "Ethereum Mainnet",
		Identifier:         "ethereum",
		NativeSymbol:       "ETH",
		PrimaryRPCURL:      "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:    []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL:   "https://etherscan.io",
		DEXScreenerChainID: "ethereum",
		SecurityChecks:     true,
	}
	BSC = entity.NetworkDefinition{
		ChainID:            56,
		Name:               "BNB Smart Chain",
		Identifier:         "bsc",
		NativeSymbol:       "BNB",
		PrimaryRPCURL:      "https://1rpc.io/bnb",
		FallbackRPCURLs:    []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"},
		BlockExplorerURL:   "https://bscscan.com",
		DEXScreenerChainID: "bsc",
		SecurityChecks:     true,
	}
	Polygon = entity.NetworkDefinition{
		ChainID:            137,
		Name:               "Polygon PoS",
		Identifier:         "polygon",
		NativeSymbol:       "POL",
		PrimaryRPCURL:      "https://polygon-rpc.com/",
		FallbackRPCURLs:    []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		BlockExplorerURL:   "https://polygonscan.com",
		DEXScreenerChainID: "polygon",
		SecurityChecks:     true,
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:            42161,
		Name:               "Arbitrum One",
		Identifier:         "arbitrum",
		NativeSymbol:       "ETH",
		PrimaryRPCURL:      "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs:    []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		BlockExplorerURL:   "https://arbiscan.io",
		DEXScreenerChainID: "arbitrum",
		SecurityChecks:     true,
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:            43114,
		Name:               "Avalanche C-Chain",
		Identifier:         "avalanche",
		NativeSymbol:       "AVAX",
		PrimaryRPCURL:      "https://api.avax.network/ext/bc/C/rpc",
		FallbackRPCURLs:    []string{"https://avalanche.public-rpc.com", "https://rpc.ankr.com/avalanche"},
		BlockExplorerURL:   "https://snowtrace.io",
		DEXScreenerChainID: "avalanche",
	}
	Base = entity.NetworkDefinition{
		ChainID:            8453,
		Name:               "Base Mainnet",
		Identifier:         "base",
		NativeSymbol:       "ETH",
		PrimaryRPCURL:      "https://1rpc.io/base",
		FallbackRPCURLs:    []string{"https://base.publicnode.com", "https://base.llamarpc.com"},
		BlockExplorerURL:   "https://basescan.org",
		DEXScreenerChainID: "base",
		SecurityChecks:     true,
	}
	Optimism = entity.NetworkDefinition{
		ChainID:            10,
		Name:               "OP Mainnet",
		Identifier:         "optimism",
		NativeSymbol:       "ETH",
		PrimaryRPCURL:      "https://op-pokt.nodies.app",
		FallbackRPCURLs:    []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"},
		BlockExplorerURL:   "https://optimistic.etherscan.io",
		DEXScreenerChainID: "optimism",
	}
	Blast = entity.NetworkDefinition{
		ChainID:            81457,
		Name:               "Blast Mainnet",
		Identifier:         "blast",
		NativeSymbol:       "ETH",
		PrimaryRPCURL:      "https://rpc.ankr.com/blast",
		FallbackRPCURLs:    []string{"https://blast.blockpi.network/v1/rpc/public"},
		BlockExplorerURL:   "https://blastscan.io",
		DEXScreenerChainID: "blast",
	}
	Linea = entity.NetworkDefinition{
		ChainID:            59144,
		Name:               "Linea Mainnet",
		Identifier:         "linea",
		NativeSymbol:       "ETH",
		PrimaryRPCURL:      "https://rpc.linea.build",
		FallbackRPCURLs:    []string{"https://linea.blockpi.network/v1/rpc/public"},
		BlockExplorerURL:   "https://lineascan.build",
		DEXScreenerChainID: "linea",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{
	Ethereum.Identifier:  Ethereum,
	BSC.Identifier:       BSC,
	Polygon.Identifier:   Polygon,
	Arbitrum.Identifier:  Arbitrum,
	Avalanche.Identifier: Avalanche,
	Base.Identifier:      Base,
	Optimism.Identifier:  Optimism,
	Blast.Identifier:     Blast,
	Linea.Identifier:     Linea,
}

// DefaultIdentifiers are the networks enabled when configuration lists none.
var DefaultIdentifiers = []string{"ethereum", "bsc", "base", "arbitrum", "polygon"}

// NewNetworkDefinitionProvider activates the given identifiers in order. Overrides
// replace (or add to) the built-in definitions by identifier before activation.
func NewNetworkDefinitionProvider(logger *zap.Logger, identifiers []string, overrides []entity.NetworkDefinition) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:            logger.Named("NetworkDefinitionProvider"),
		allNetworkDefs:    make(map[string]entity.NetworkDefinition, len(allKnownDefinitions)+len(overrides)),
		activeNetworkDefs: make([]entity.NetworkDefinition, 0, len(identifiers)),
	}
	for id, def := range allKnownDefinitions {
		p.allNetworkDefs[id] = def
	}
	for _, def := range overrides {
		id := strings.ToLower(def.Identifier)
		if id == "" {
			p.logger.Warn("Network override without identifier, skipping", zap.String("name", def.Name))
			continue
		}
		def.Identifier = id
		p.allNetworkDefs[id] = def
	}

	if len(identifiers) == 0 {
		identifiers = DefaultIdentifiers
	}

	seen := make(map[string]struct{}, len(identifiers))
	for _, raw := range identifiers {
		identifier := strings.ToLower(strings.TrimSpace(raw))
		if _, dup := seen[identifier]; dup {
			p.logger.Warn("Duplicate network identifier in configuration, skipping", zap.String("identifier", identifier))
			continue
		}
		def, ok := p.allNetworkDefs[identifier]
		if !ok {
			p.logger.Warn("No network definition for configured identifier, skipping", zap.String("identifier", identifier))
			continue
		}
		seen[identifier] = struct{}{}
		p.activeNetworkDefs = append(p.activeNetworkDefs, def)
	}

	p.logger.Info("NetworkDefinitionProvider initialized", zap.Int("activeNetworks", len(p.activeNetworkDefs)))
	for _, netDef := range p.activeNetworkDefs {
		p.logger.Debug("Active network",
			zap.String("name", netDef.Name),
			zap.String("identifier", netDef.Identifier),
			zap.Uint64("chainID", netDef.ChainID),
			zap.String("dexScreenerID", netDef.DEXScreenerChainID))
	}
	return p
}

// GetAllNetworkDefinitions returns the list of active network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	copy(defsCopy, p.activeNetworkDefs)
	return defsCopy
}

// GetNetworkDefinitionByName returns a specific network definition by its identifier if it's active.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.activeNetworkDefs {
		if def.Identifier == identifier {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// SecurityChainIDs maps DEX Screener chain ids to numeric EVM chain ids for every
// active network that has security checks enabled.
func (p *NetworkDefinitionProvider) SecurityChainIDs() map[string]uint64 {
	out := make(map[string]uint64)
	if p == nil {
		return out
	}
	for _, def := range p.activeNetworkDefs {
		if def.SecurityChecks && def.DEXScreenerChainID != "" {
			out[def.DEXScreenerChainID] = def.ChainID
		}
	}
	return out
}
