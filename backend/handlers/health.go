// ABOUTME: HTTP handlers for health and capacity model endpoints
// ABOUTME: Reports service status and the constants the engine divides by

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// Health returns API health status including the cache state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:        "ok",
		CapacityModel: "valid",
		Timestamp:     time.Now().UTC(),
	}

	if err := h.calc.Model().Validate(); err != nil {
		resp.Status = "degraded"
		resp.CapacityModel = err.Error()
	}

	if h.cache != nil {
		resp.CacheStatus = models.CacheStatus{
			Entries:    h.cache.Len(),
			TTLSeconds: int(h.cache.TTL().Seconds()),
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// CapacityModel returns the per-vCPU capacity constants.
func (h *Handler) CapacityModel(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.calc.Model())
}
