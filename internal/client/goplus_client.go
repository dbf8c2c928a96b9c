package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spike_detector/internal/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrTokenNotFound is returned when GoPlus answers without a report for the address.
	ErrTokenNotFound = errors.New("token not present in security report")
	// ErrInvalidAddress is returned for addresses that are not 20-byte hex.
	ErrInvalidAddress = errors.New("invalid EVM address")
)

// GoPlusClient fetches EVM token security flags.
type GoPlusClient interface {
	TokenSecurity(ctx context.Context, chainID uint64, address string) (entity.GoPlusTokenSecurity, error)
}

type goPlusClientImpl struct {
	client      *fasthttp.Client
	baseURL     string
	accessToken string
	timeout     time.Duration
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewGoPlusClient creates a GoPlus client limited to rps requests per second.
func NewGoPlusClient(baseURL, accessToken string, timeout time.Duration, rps float64, burst int, logger *zap.Logger) GoPlusClient {
	return &goPlusClientImpl{
		client:      &fasthttp.Client{Name: "spike_detector"},
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		timeout:     timeout,
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		logger:      logger.Named("GoPlusClient"),
	}
}

// TokenSecurity implements GoPlusClient.
func (c *goPlusClientImpl) TokenSecurity(ctx context.Context, chainID uint64, address string) (entity.GoPlusTokenSecurity, error) {
	if !common.IsHexAddress(address) {
		return entity.GoPlusTokenSecurity{}, fmt.Errorf("%w %q", ErrInvalidAddress, address)
	}
	key := strings.ToLower(common.HexToAddress(address).Hex())

	if err := c.limiter.Wait(ctx); err != nil {
		return entity.GoPlusTokenSecurity{}, fmt.Errorf("goplus rate limiter: %w", err)
	}

	requestURL := fmt.Sprintf("%s/api/v1/token_security/%d?contract_addresses=%s", c.baseURL, chainID, key)
	var headers map[string]string
	if c.accessToken != "" {
		headers = map[string]string{"Authorization": c.accessToken}
	}

	var resp entity.GoPlusResponse
	if err := getJSON(ctx, c.client, requestURL, headers, c.timeout, &resp); err != nil {
		c.logger.Debug("GoPlus token security request failed",
			zap.Uint64("chainID", chainID), zap.String("address", key), zap.Error(err))
		return entity.GoPlusTokenSecurity{}, err
	}

	for addr, report := range resp.Result {
		if strings.EqualFold(addr, key) {
			return report, nil
		}
	}
	return entity.GoPlusTokenSecurity{}, fmt.Errorf("%w: %s on chain %d", ErrTokenNotFound, key, chainID)
}
