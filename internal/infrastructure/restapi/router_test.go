package restapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spike_detector/internal/domain/entity"
	"spike_detector/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeSpikeReader struct {
	feed        entity.SpikeFeed
	lastRefresh bool
}

func (f *fakeSpikeReader) Get(_ context.Context, refresh bool) entity.SpikeFeed {
	f.lastRefresh = refresh
	return f.feed
}

type fakeGas struct {
	snapshot entity.GasSnapshot
}

func (f *fakeGas) GetGasFees(context.Context, bool) entity.GasSnapshot {
	return f.snapshot
}

func newTestRouter(spikes *fakeSpikeReader, gas *fakeGas) (*gin.Engine, *metrics.Metrics) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	reg := prometheus.NewRegistry()
	m.Register(reg)
	h := NewHandler(zap.NewNop(), spikes, gas, m)
	return SetupRouter(zap.NewNop(), h, reg), m
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSpikes(t *testing.T) {
	spikes := &fakeSpikeReader{feed: entity.SpikeFeed{
		Pairs: []entity.ScoredPair{{
			Pair:        entity.Pair{ChainID: "solana", PairAddress: "P1"},
			SpikeScore:  60,
			IsSpiking:   true,
			SafetyLabel: entity.SafetySafe,
			SafetyEmoji: "✅",
		}},
		Timestamp: 1700000000000,
	}}
	r, _ := newTestRouter(spikes, &fakeGas{})

	w := doRequest(r, http.MethodGet, "/api/v1/spikes?refresh=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, spikes.lastRefresh)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "error")
	assert.EqualValues(t, 1700000000000, body["timestamp"])
	pairs := body["pairs"].([]any)
	require.Len(t, pairs, 1)
	first := pairs[0].(map[string]any)
	assert.Equal(t, "P1", first["pairAddress"])
	assert.Equal(t, "Safe", first["safetyLabel"])
	assert.EqualValues(t, 60, first["spikeScore"])
}

func TestGetSpikes_ErrorFeed(t *testing.T) {
	spikes := &fakeSpikeReader{feed: entity.SpikeFeed{Pairs: []entity.ScoredPair{}, Timestamp: 1, Error: "Failed to fetch spike data"}}
	r, _ := newTestRouter(spikes, &fakeGas{})

	w := doRequest(r, http.MethodGet, "/api/v1/spikes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, spikes.lastRefresh)
	assert.JSONEq(t, `{"pairs":[],"timestamp":1,"error":"Failed to fetch spike data"}`, w.Body.String())
}

func TestGetGas(t *testing.T) {
	gas := &fakeGas{snapshot: entity.GasSnapshot{
		Networks: []entity.GasQuote{
			{Network: "Ethereum Mainnet", Identifier: "ethereum", ChainID: 1, NativeSymbol: "ETH", GasPriceGwei: "12"},
			{Network: "BNB Smart Chain", Identifier: "bsc", ChainID: 56, NativeSymbol: "BNB", Error: "dial failed"},
		},
		Timestamp: 5,
	}}
	r, _ := newTestRouter(&fakeSpikeReader{}, gas)

	w := doRequest(r, http.MethodGet, "/api/v1/gas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"networks": [
			{"network":"Ethereum Mainnet","identifier":"ethereum","chainId":1,"nativeSymbol":"ETH","gasPriceGwei":"12"},
			{"network":"BNB Smart Chain","identifier":"bsc","chainId":56,"nativeSymbol":"BNB","error":"dial failed"}
		],
		"timestamp": 5
	}`, w.Body.String())
}

func TestAnalyzeContract(t *testing.T) {
	r, _ := newTestRouter(&fakeSpikeReader{}, &fakeGas{})

	w := doRequest(r, http.MethodPost, "/api/v1/analyze", `{"source":"contract X { function kill() public { selfdestruct(payable(msg.sender)); } }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var report entity.ContractReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 60, report.Score)
	assert.Equal(t, entity.SafetyWarning, report.Label)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "selfdestruct", report.Findings[0].ID)
}

func TestAnalyzeContract_BadRequests(t *testing.T) {
	r, _ := newTestRouter(&fakeSpikeReader{}, &fakeGas{})

	for _, body := range []string{`{}`, `{"source":""}`, `not json`, `{"source":"   "}`} {
		w := doRequest(r, http.MethodPost, "/api/v1/analyze", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	r, m := newTestRouter(&fakeSpikeReader{}, &fakeGas{})
	m.PipelineRuns.WithLabelValues("ok").Inc()

	w := doRequest(r, http.MethodGet, "/api/v1/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `spike_detector_pipeline_runs_total{outcome="ok"} 1`)
}
