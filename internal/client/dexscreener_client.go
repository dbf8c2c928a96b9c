package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"spike_detector/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// DEXScreenerClient defines the interface for interacting with the DEX Screener API.
type DEXScreenerClient interface {
	SearchPairs(ctx context.Context, query string) ([]entity.PairData, error)
}

// dexScreenerClientImpl is the implementation of DEXScreenerClient.
type dexScreenerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewDEXScreenerClient creates a new instance of dexScreenerClientImpl.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, logger *zap.Logger) DEXScreenerClient {
	return &dexScreenerClientImpl{
		client:  &fasthttp.Client{Name: "spike_detector"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("DEXScreenerClient"),
	}
}

// SearchPairs implements the DEXScreenerClient interface.
func (c *dexScreenerClientImpl) SearchPairs(ctx context.Context, query string) ([]entity.PairData, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/latest/dex/search?q=%s", c.baseURL, url.QueryEscape(query))
	c.logger.Debug("Requesting pair search from DEX Screener", zap.String("url", requestURL))

	var resp entity.DEXSearchResponse
	if err := getJSON(ctx, c.client, requestURL, nil, c.timeout, &resp); err != nil {
		c.logger.Error("DEX Screener search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	if len(resp.Pairs) == 0 {
		c.logger.Warn("DEXScreener returned 200 OK with 0 pairs", zap.String("query", query))
	}
	c.logger.Debug("Successfully unmarshalled DEX Screener search response",
		zap.String("query", query),
		zap.Int("pairCount", len(resp.Pairs)))
	return resp.Pairs, nil
}
