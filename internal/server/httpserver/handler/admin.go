package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/infra/buildinfo"
)

// handleStepAdvance handles POST /admin/v1/step/advance.
// With an explicit step the clock moves to it; with an empty body (or
// step 0) the clock ticks by one.
func (h *Handler) handleStepAdvance(w http.ResponseWriter, r *http.Request) {
	var req StepAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "invalid request body", nil)
		return
	}

	var step uint32
	if req.Step == 0 {
		next, err := h.clock.Tick(r.Context())
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		step = next
	} else {
		if err := h.clock.Advance(r.Context(), req.Step); err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		step = req.Step
	}

	if h.metrics != nil {
		h.metrics.SetCurrentStep(float64(step))
	}

	h.logger.Info("step clock advanced", "step", step)
	h.writeJSON(w, r, http.StatusOK, StepAdvanceResponse{Step: step})
}

// handleAdminStatus handles GET /admin/v1/status/summary.
func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	step, err := h.clock.Current(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	supply, err := h.tokens.TotalSupply(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	status := map[string]any{
		"status":     "running",
		"version":    buildinfo.Version,
		"commit":     buildinfo.Commit,
		"time":       time.Now().UTC().Format(time.RFC3339),
		"step":       step,
		"supply":     supply,
		"max_supply": h.tokens.MaxSupply(),
	}

	if stats, err := h.kv.Stats(r.Context()); err == nil {
		status["storage"] = stats
	}

	h.writeJSON(w, r, http.StatusOK, status)
}

// handleGCTrigger handles POST /admin/v1/gc/trigger.
func (h *Handler) handleGCTrigger(w http.ResponseWriter, r *http.Request) {
	reclaimed, err := h.kv.GC(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":         true,
		"reclaimed_bytes": reclaimed,
		"triggered_at":    time.Now().UTC().Format(time.RFC3339),
	})
}
