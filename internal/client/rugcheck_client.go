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

// RugCheckClient fetches Solana token risk reports.
type RugCheckClient interface {
	TokenReport(ctx context.Context, mint string) (entity.RugCheckReport, error)
}

type rugCheckClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRugCheckClient creates a RugCheck client. timeout applies only when the
// caller's context carries no deadline.
func NewRugCheckClient(baseURL string, timeout time.Duration, logger *zap.Logger) RugCheckClient {
	return &rugCheckClientImpl{
		client:  &fasthttp.Client{Name: "spike_detector"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("RugCheckClient"),
	}
}

// TokenReport implements RugCheckClient.
func (c *rugCheckClientImpl) TokenReport(ctx context.Context, mint string) (entity.RugCheckReport, error) {
	var report entity.RugCheckReport
	if mint == "" {
		return report, fmt.Errorf("mint address cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/v1/tokens/%s/report/summary", c.baseURL, url.PathEscape(mint))
	if err := getJSON(ctx, c.client, requestURL, nil, c.timeout, &report); err != nil {
		c.logger.Debug("RugCheck report request failed", zap.String("mint", mint), zap.Error(err))
		return entity.RugCheckReport{}, err
	}
	return report, nil
}
