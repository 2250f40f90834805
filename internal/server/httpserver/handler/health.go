package handler

import (
	"net/http"
	"time"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready.
// Readiness includes a storage round trip so a wedged engine flips
// the probe.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.clock != nil {
		if _, err := h.clock.Current(r.Context()); err != nil {
			h.writeError(w, r, http.StatusServiceUnavailable, "VL-SYS-5001", "storage not ready", nil)
			return
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
