package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes use the format VL-<AREA>-<NNNN>; the numeric suffix maps onto HTTP
// status families at the handler layer.
type DomainError struct {
	Code    string // Error code (e.g., "VL-CKPT-4220")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Checkpoint Errors (CKPT)
// ============================================================================

var (
	// ErrInvalidDecrement indicates an attempt to decrease an account's
	// weight below zero. This is a caller contract violation (the token
	// ledger believes the account holds a token it does not) and is
	// surfaced, never clamped or wrapped.
	ErrInvalidDecrement = NewDomainError("VL-CKPT-4220", "weight cannot decrease below zero")

	// ErrCheckpointCorrupt indicates a checkpoint index that must exist
	// according to the stored count could not be read. The count and the
	// log disagree; the enclosing operation is aborted.
	ErrCheckpointCorrupt = NewDomainError("VL-CKPT-5001", "checkpoint log inconsistent with count")

	// ErrStepRegression indicates an attempt to move the step clock backwards.
	ErrStepRegression = NewDomainError("VL-STEP-4220", "step clock cannot move backwards")
)

// ============================================================================
// Token Errors (TOKN)
// ============================================================================

var (
	// ErrTokenNotFound indicates the requested token does not exist.
	ErrTokenNotFound = NewDomainError("VL-TOKN-4040", "token not found")

	// ErrNotTokenOwner indicates the caller does not own the token.
	ErrNotTokenOwner = NewDomainError("VL-TOKN-4030", "caller does not own token")

	// ErrMaxSupplyReached indicates the mint would exceed the supply cap.
	ErrMaxSupplyReached = NewDomainError("VL-TOKN-4090", "max token supply reached")

	// ErrSelfTransfer indicates sender and recipient are the same account.
	ErrSelfTransfer = NewDomainError("VL-TOKN-4001", "cannot transfer token to its current owner")

	// ErrLedgerCorrupt indicates the ownership map and the balance
	// counters disagree.
	ErrLedgerCorrupt = NewDomainError("VL-TOKN-5001", "token ledger inconsistent")
)

// ============================================================================
// Account / Argument Errors (ACCT, ARG)
// ============================================================================

var (
	// ErrInvalidAccount indicates a malformed account identifier.
	ErrInvalidAccount = NewDomainError("VL-ACCT-4001", "invalid account id")

	// ErrInvalidArgument indicates a malformed request argument.
	ErrInvalidArgument = NewDomainError("VL-ARG-4001", "invalid argument")
)

// ============================================================================
// Auth Errors (AUTH)
// ============================================================================

var (
	// ErrAuthRequired indicates missing credentials.
	ErrAuthRequired = NewDomainError("VL-AUTH-4010", "authentication required")

	// ErrAuthInvalid indicates the presented operator key is invalid.
	ErrAuthInvalid = NewDomainError("VL-AUTH-4011", "invalid operator key")

	// ErrNotAuthorized indicates the caller lacks mint authority.
	ErrNotAuthorized = NewDomainError("VL-AUTH-4030", "caller is not authorized to mint")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = NewDomainError("VL-SYS-5000", "internal error")

	// ErrStorage indicates a storage engine failure.
	ErrStorage = NewDomainError("VL-SYS-5001", "storage failure")
)
