package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ohuvaht/ohuvaht/internal/api/response"
	"github.com/ohuvaht/ohuvaht/internal/catalog"
	"github.com/ohuvaht/ohuvaht/internal/monitoring"
	"github.com/ohuvaht/ohuvaht/internal/worker"
)

// MonitoringHandler serves snapshots, diagnostics and the force-refresh
// entry point.
type MonitoringHandler struct {
	service *monitoring.Service
	runner  *worker.Runner
	catalog *catalog.Catalog
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(service *monitoring.Service, runner *worker.Runner, cat *catalog.Catalog) *MonitoringHandler {
	return &MonitoringHandler{
		service: service,
		runner:  runner,
		catalog: cat,
	}
}

// GetSnapshot handles GET /v1/snapshot - the latest cached refresh snapshot.
func (h *MonitoringHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.service.Snapshot()
	if !ok {
		response.NotFound(w, r, "no snapshot available yet")
		return
	}
	response.JSON(w, r, http.StatusOK, snapshot)
}

// GetStatuses handles GET /v1/status - diagnostics for all categories.
func (h *MonitoringHandler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Statuses())
}

// GetCategoryStatus handles GET /v1/status/{category}.
func (h *MonitoringHandler) GetCategoryStatus(w http.ResponseWriter, r *http.Request) {
	cat, err := monitoring.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	status, ok := h.service.Status(cat)
	if !ok {
		response.NotFound(w, r, "category has not been checked yet")
		return
	}
	response.JSON(w, r, http.StatusOK, status)
}

// ForceRefresh handles POST /v1/refresh - schedules an out-of-band refresh.
func (h *MonitoringHandler) ForceRefresh(w http.ResponseWriter, r *http.Request) {
	if h.runner == nil {
		response.ServiceUnavailable(w, r, "refresh runner is not running")
		return
	}
	h.runner.ForceRefresh()
	response.JSON(w, r, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

// ListStations handles GET /v1/catalog/{category}/stations.
func (h *MonitoringHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	cat, err := monitoring.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	response.JSON(w, r, http.StatusOK, h.catalog.Stations(cat))
}

// ListIndicators handles GET /v1/catalog/{category}/indicators.
func (h *MonitoringHandler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	cat, err := monitoring.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	response.JSON(w, r, http.StatusOK, h.catalog.Indicators(cat))
}
