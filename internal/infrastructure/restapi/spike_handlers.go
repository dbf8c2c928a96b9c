package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"spike_detector/internal/app/port"
	"spike_detector/internal/domain/analyzer"
	"spike_detector/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxContractSourceBytes = 512 << 10

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Source string `json:"source" binding:"required"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the public API.
type Handler struct {
	spikes  port.SpikeFeedReader
	gas     port.GasService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(logger *zap.Logger, spikes port.SpikeFeedReader, gas port.GasService, m *metrics.Metrics) *Handler {
	return &Handler{
		spikes:  spikes,
		gas:     gas,
		metrics: m,
		logger:  logger.Named("RestAPI"),
	}
}

// GetSpikes returns the ranked spike feed. An upstream failure is still a 200 with
// the error field set, so clients can render an empty state.
func (h *Handler) GetSpikes(c *gin.Context) {
	feed := h.spikes.Get(c.Request.Context(), refreshRequested(c))
	c.JSON(http.StatusOK, feed)
}

// GetGas returns gas quotes for every configured network.
func (h *Handler) GetGas(c *gin.Context) {
	snapshot := h.gas.GetGasFees(c.Request.Context(), refreshRequested(c))
	c.JSON(http.StatusOK, snapshot)
}

// AnalyzeContract scans submitted Solidity source.
func (h *Handler) AnalyzeContract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContractSourceBytes)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must be JSON with a non-empty \"source\" field"})
		return
	}

	report, err := analyzer.Analyze(req.Source)
	if errors.Is(err, analyzer.ErrEmptySource) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Contract analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "analysis failed"})
		return
	}

	h.metrics.ContractScans.WithLabelValues(string(report.Label)).Inc()
	c.JSON(http.StatusOK, report)
}

// Healthz is a liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func refreshRequested(c *gin.Context) bool {
	refresh, err := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	return err == nil && refresh
}
