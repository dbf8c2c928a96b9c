package port

import (
	"context"
	"math/big"

	"spike_detector/internal/domain/entity"

	"github.com/ethereum/go-ethereum/core/types"
)

// GasReader is the subset of an EVM JSON-RPC client needed for gas quotes.
// *ethclient.Client satisfies it.
type GasReader interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns the active network definitions in configured order.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific network definition by its identifier.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)

	// SecurityChainIDs maps DEX Screener chain ids to EVM chain ids for GoPlus lookups.
	SecurityChainIDs() map[string]uint64
}

// GasReaderProvider hands out a connected GasReader per network.
type GasReaderProvider interface {
	GetReader(ctx context.Context, networkDefinition entity.NetworkDefinition) (GasReader, error)
}
