package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// handleGetToken handles GET /v1/tokens/{id}.
func (h *Handler) handleGetToken(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTokenID(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	owner, err := h.tokens.OwnerOf(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, TokenResponse{
		TokenID: uint64(id),
		Owner:   owner.String(),
	})
}

// handleSupply handles GET /v1/supply.
func (h *Handler) handleSupply(w http.ResponseWriter, r *http.Request) {
	supply, err := h.tokens.TotalSupply(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SetTotalSupply(float64(supply))
	}

	h.writeJSON(w, r, http.StatusOK, SupplyResponse{
		Supply:    supply,
		MaxSupply: h.tokens.MaxSupply(),
	})
}

// handleMint handles POST /v1/tokens/mint.
// The route is operator-key protected; the mint is stamped with the
// step clock's current value.
func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	var req MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "invalid request body", nil)
		return
	}
	if req.Recipient == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "recipient is required", nil)
		return
	}

	step, err := h.clock.Current(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	id, err := h.tokens.Mint(r.Context(), domain.AccountID(req.Recipient), step)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncTokenMinted()
		h.metrics.AddCheckpointsAppended(1)
	}

	h.writeJSON(w, r, http.StatusCreated, MintResponse{
		TokenID:   uint64(id),
		Recipient: req.Recipient,
		Step:      step,
	})
}

// handleTransfer handles POST /v1/tokens/{id}/transfer.
// The caller comes from the X-Account header, falling back to the
// request body's from field.
func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTokenID(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "invalid request body", nil)
		return
	}

	caller := r.Header.Get("X-Account")
	if caller == "" {
		caller = req.From
	}
	if caller == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "caller account is required (X-Account header or from field)", nil)
		return
	}
	if req.To == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrInvalidArgument.Code, "to is required", nil)
		return
	}

	step, err := h.clock.Current(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.tokens.Transfer(r.Context(), domain.AccountID(caller), domain.AccountID(req.To), id, step); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncTokenTransferred()
		h.metrics.AddCheckpointsAppended(2)
	}

	h.writeJSON(w, r, http.StatusOK, TransferResponse{
		TokenID: uint64(id),
		From:    caller,
		To:      req.To,
		Step:    step,
	})
}
