package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- ROSCA Business Logic (ROSCA) ----

func ErrGroupNotFound() *AppError {
	return New("ROSCA_001", "Group not found", http.StatusNotFound)
}

func ErrMemberNotFound() *AppError {
	return New("ROSCA_002", "Member not found", http.StatusNotFound)
}

func ErrGroupWalletMissing() *AppError {
	return New("ROSCA_003", "Group has no wallet provisioned", http.StatusConflict)
}

func ErrMemberWalletMissing() *AppError {
	return New("ROSCA_004", "Member has no wallet provisioned", http.StatusConflict)
}

func ErrInvalidAmount() *AppError {
	return New("ROSCA_005", "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidRound() *AppError {
	return New("ROSCA_006", "Round number must be positive", http.StatusBadRequest)
}

func ErrEmptyRound() *AppError {
	return New("ROSCA_007", "Round has no members to collect from", http.StatusBadRequest)
}

// ---- Wallet Service Upstream (WLT) ----

func ErrInsufficientFunds() *AppError {
	return New("WLT_001", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrWalletNotFound() *AppError {
	return New("WLT_002", "Wallet not found", http.StatusNotFound)
}

func ErrUpstreamRejected(err error) *AppError {
	return Wrap("WLT_003", "Wallet service rejected the request", http.StatusBadGateway, err)
}

func ErrUpstreamUnavailable(err error) *AppError {
	return Wrap("WLT_004", "Wallet service unreachable", http.StatusServiceUnavailable, err)
}

func ErrUpstreamAuth(err error) *AppError {
	return Wrap("WLT_005", "Wallet service credentials rejected", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a ROSCA_005-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("ROSCA_005", message, http.StatusBadRequest)
}
