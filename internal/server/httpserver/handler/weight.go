package handler

import (
	"net/http"
	"strconv"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// handleCurrentWeight handles GET /v1/accounts/{id}/weight.
func (h *Handler) handleCurrentWeight(w http.ResponseWriter, r *http.Request) {
	account := domain.AccountID(r.PathValue("id"))

	weight, err := h.weights.CurrentWeight(r.Context(), account)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	step, err := h.clock.Current(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWeightQuery("current")
	}

	h.writeJSON(w, r, http.StatusOK, WeightResponse{
		Account: account.String(),
		Step:    step,
		Weight:  weight,
	})
}

// handleWeightAt handles GET /v1/accounts/{id}/weight/at?step=N.
//
// A step with no recorded history answers weight 0 with 200; only
// malformed input and storage faults are errors.
func (h *Handler) handleWeightAt(w http.ResponseWriter, r *http.Request) {
	account := domain.AccountID(r.PathValue("id"))

	stepParam := r.URL.Query().Get("step")
	if stepParam == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "step query parameter is required", nil)
		return
	}
	step64, err := strconv.ParseUint(stepParam, 10, 32)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "step must be an unsigned 32-bit integer", nil)
		return
	}
	step := uint32(step64)

	now, err := h.clock.Current(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	weight, err := h.weights.WeightAt(r.Context(), account, step, now)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWeightQuery("at_step")
	}

	h.writeJSON(w, r, http.StatusOK, WeightResponse{
		Account: account.String(),
		Step:    step,
		Weight:  weight,
	})
}

// handleCheckpoints handles GET /v1/accounts/{id}/checkpoints.
func (h *Handler) handleCheckpoints(w http.ResponseWriter, r *http.Request) {
	account := domain.AccountID(r.PathValue("id"))

	log, err := h.weights.History(r.Context(), account)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	entries := make([]CheckpointEntry, len(log))
	for i, cp := range log {
		entries[i] = CheckpointEntry{Step: cp.Step, Weight: cp.Weight}
	}

	h.writeJSON(w, r, http.StatusOK, CheckpointsResponse{
		Account:     account.String(),
		Checkpoints: entries,
	})
}
