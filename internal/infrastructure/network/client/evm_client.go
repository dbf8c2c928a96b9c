package client

import (
	"context"
	"fmt"
	"time"

	"spike_detector/internal/domain/entity"

	"github.com/ethereum/go-ethereum/ethclient"
)

// rpcURLs returns the primary endpoint followed by the fallbacks, skipping blanks.
func rpcURLs(netDef entity.NetworkDefinition) []string {
	urls := make([]string, 0, 1+len(netDef.FallbackRPCURLs))
	if netDef.PrimaryRPCURL != "" {
		urls = append(urls, netDef.PrimaryRPCURL)
	}
	for _, u := range netDef.FallbackRPCURLs {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// DialEVMClient connects to the first endpoint of netDef that answers eth_chainId
// with the expected chain id.
func DialEVMClient(ctx context.Context, netDef entity.NetworkDefinition, connectionTimeout time.Duration) (*ethclient.Client, string, error) {
	urls := rpcURLs(netDef)
	if len(urls) == 0 {
		return nil, "", fmt.Errorf("no RPC endpoints configured for network %s", netDef.Name)
	}

	var lastErr error
	for _, rpcURL := range urls {
		dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		client, err := ethclient.DialContext(dialCtx, rpcURL)
		if err != nil {
			cancel()
			lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
			continue
		}

		chainID, err := client.ChainID(dialCtx)
		cancel()
		if err != nil {
			client.Close()
			lastErr = fmt.Errorf("failed to verify chainID for %s: %w", rpcURL, err)
			continue
		}
		if netDef.ChainID != 0 && chainID.Uint64() != netDef.ChainID {
			client.Close()
			lastErr = fmt.Errorf("chainID mismatch for %s: expected %d, got %d", rpcURL, netDef.ChainID, chainID.Uint64())
			continue
		}
		return client, rpcURL, nil
	}

	return nil, "", fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}
