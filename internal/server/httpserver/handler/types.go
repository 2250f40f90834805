package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses
// Prometheus exposition format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// WeightResponse is the response body for the weight queries.
type WeightResponse struct {
	Account string `json:"account"`
	Step    uint32 `json:"step"`
	Weight  uint32 `json:"weight"`
}

// CheckpointEntry is one entry of a checkpoint log response.
type CheckpointEntry struct {
	Step   uint32 `json:"step"`
	Weight uint32 `json:"weight"`
}

// CheckpointsResponse is the response body for GET /v1/accounts/{id}/checkpoints.
type CheckpointsResponse struct {
	Account     string            `json:"account"`
	Checkpoints []CheckpointEntry `json:"checkpoints"`
}

// TokenResponse is the response body for GET /v1/tokens/{id}.
type TokenResponse struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
}

// SupplyResponse is the response body for GET /v1/supply.
type SupplyResponse struct {
	Supply    uint64 `json:"supply"`
	MaxSupply uint64 `json:"max_supply"`
}

// MintRequest is the request body for POST /v1/tokens/mint.
type MintRequest struct {
	Recipient string `json:"recipient"`
}

// MintResponse is the response body for POST /v1/tokens/mint.
type MintResponse struct {
	TokenID   uint64 `json:"token_id"`
	Recipient string `json:"recipient"`
	Step      uint32 `json:"step"`
}

// TransferRequest is the request body for POST /v1/tokens/{id}/transfer.
// From may be omitted when the X-Account header carries the caller.
type TransferRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

// TransferResponse is the response body for POST /v1/tokens/{id}/transfer.
type TransferResponse struct {
	TokenID uint64 `json:"token_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Step    uint32 `json:"step"`
}

// StepAdvanceRequest is the request body for POST /admin/v1/step/advance.
// Step zero (or an empty body) advances by one.
type StepAdvanceRequest struct {
	Step uint32 `json:"step,omitempty"`
}

// StepAdvanceResponse is the response body for POST /admin/v1/step/advance.
type StepAdvanceResponse struct {
	Step uint32 `json:"step"`
}
