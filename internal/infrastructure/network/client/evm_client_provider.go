package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spike_detector/internal/app/port"
	"spike_detector/internal/domain/entity"

	"go.uber.org/zap"
)

// evmClientProvider implements port.GasReaderProvider. Connected clients are
// cached per chain id.
type evmClientProvider struct {
	clients           map[uint64]port.GasReader
	mu                sync.Mutex
	logger            *zap.Logger
	connectionTimeout time.Duration
}

// NewEVMClientProvider creates a new EVM client provider.
func NewEVMClientProvider(logger *zap.Logger, connectionTimeout time.Duration) port.GasReaderProvider {
	return &evmClientProvider{
		clients:           make(map[uint64]port.GasReader),
		logger:            logger.Named("EVMClientProvider"),
		connectionTimeout: connectionTimeout,
	}
}

// GetReader retrieves a client for the given network, dialing on first use.
func (p *evmClientProvider) GetReader(ctx context.Context, netDef entity.NetworkDefinition) (port.GasReader, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[netDef.ChainID]; exists {
		return client, nil
	}

	p.logger.Info("Creating new EVM client", zap.String("network", netDef.Name), zap.String("rpcPrimary", netDef.PrimaryRPCURL))
	client, rpcURL, err := DialEVMClient(ctx, netDef, p.connectionTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", zap.String("network", netDef.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[netDef.ChainID] = client
	p.logger.Info("Connected EVM client", zap.String("network", netDef.Name), zap.String("rpc", rpcURL))
	return client, nil
}
