package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohuvaht/ohuvaht/internal/api"
	"github.com/ohuvaht/ohuvaht/internal/catalog"
	"github.com/ohuvaht/ohuvaht/internal/monitoring"
	"github.com/ohuvaht/ohuvaht/internal/provider/resilience"
	"github.com/ohuvaht/ohuvaht/internal/worker"
)

type stubFetcher struct{}

func (stubFetcher) FetchRange(_ context.Context, _ monitoring.Category, stationID int, indicators []int, r monitoring.DateRange) (monitoring.CategoryResult, error) {
	result := monitoring.CategoryResult{}
	result.Add(monitoring.Measurement{
		Indicator:   indicators[0],
		Station:     stationID,
		Value:       "42",
		MeasuredAt:  "2025-03-15 09:00:00",
		FetchRange:  r,
		RetrievedAt: time.Now(),
	})
	return result, nil
}

type testHarness struct {
	router  http.Handler
	service *monitoring.Service
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	cat := catalog.Default()
	service := monitoring.NewService(monitoring.ServiceConfig{
		Fetcher:    stubFetcher{},
		Catalog:    cat,
		Logger:     zerolog.Nop(),
		Stations:   map[monitoring.Category]int{monitoring.CategoryRadiation: 53},
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	runner := worker.NewRunner(worker.RunnerConfig{
		Service:  service,
		Logger:   zerolog.Nop(),
		Interval: time.Hour,
	})
	registry := resilience.NewRegistry()
	registry.Register("ohuseire", resilience.NewClient(resilience.ClientConfig{Name: "ohuseire"}))

	router := api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "now",
		Logger:    zerolog.Nop(),
		Service:   service,
		Runner:    runner,
		Catalog:   cat,
		Registry:  registry,
	})
	return &testHarness{router: router, service: service}
}

func (h *testHarness) request(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["upstreams"])
}

func TestVersionEndpoint(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test", body["version"])
}

func TestSnapshotEndpoint(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/v1/snapshot")
	assert.Equal(t, http.StatusNotFound, rec.Code, "no snapshot before the first cycle")
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	_, err := h.service.Refresh(context.Background())
	require.NoError(t, err)

	rec = h.request(t, http.MethodGet, "/v1/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot map[string]map[string][]monitoring.Measurement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Contains(t, snapshot, "radiation")
	assert.NotEmpty(t, snapshot["radiation"]["80"])
}

func TestStatusEndpoints(t *testing.T) {
	h := newHarness(t)
	_, err := h.service.Refresh(context.Background())
	require.NoError(t, err)

	rec := h.request(t, http.MethodGet, "/v1/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var statuses map[string]monitoring.CategoryStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	require.Contains(t, statuses, "radiation")
	assert.Equal(t, monitoring.StatusSuccess, statuses["radiation"].Status)

	rec = h.request(t, http.MethodGet, "/v1/status/radiation")
	require.Equal(t, http.StatusOK, rec.Code)

	var status monitoring.CategoryStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, monitoring.StatusSuccess, status.Status)
	require.NotNil(t, status.LastSuccessful)
}

func TestStatusEndpoint_UnknownCategory(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/v1/status/weather")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestStatusEndpoint_NotCheckedYet(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/v1/status/pollen")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForceRefreshEndpoint(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodPost, "/v1/refresh")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "refresh scheduled", body["status"])
}

func TestCatalogEndpoints(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/v1/catalog/pollen/stations")
	require.Equal(t, http.StatusOK, rec.Code)

	var stations []catalog.Station
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stations))
	assert.Len(t, stations, 5)

	rec = h.request(t, http.MethodGet, "/v1/catalog/airquality/indicators")
	require.Equal(t, http.StatusOK, rec.Code)

	var indicators []catalog.Indicator
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &indicators))
	assert.NotEmpty(t, indicators)

	rec = h.request(t, http.MethodGet, "/v1/catalog/weather/stations")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	h := newHarness(t)

	rec := h.request(t, http.MethodGet, "/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
