// Package handler provides HTTP handlers for the operational API.
package handler

import (
	"net/http"
	"time"

	"github.com/ohuvaht/ohuvaht/internal/api/response"
	"github.com/ohuvaht/ohuvaht/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /health.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if h.registry != nil {
		upstreams := h.registry.AllHealth()
		body["upstreams"] = upstreams
		for _, u := range upstreams {
			if !u.Healthy() {
				body["status"] = "degraded"
			}
		}
	}
	response.JSON(w, r, http.StatusOK, body)
}

// Version handles GET /version.
func (h *OpsHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]string{
		"version":   h.version,
		"buildTime": h.buildTime,
	})
}
