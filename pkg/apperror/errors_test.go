package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WLT_001", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[WLT_001] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("ROSCA_001", "test", http.StatusNotFound)
	assert.Nil(t, appErr.Unwrap())
}

func TestRoscaErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"GroupNotFound", ErrGroupNotFound(), "ROSCA_001", 404},
		{"MemberNotFound", ErrMemberNotFound(), "ROSCA_002", 404},
		{"GroupWalletMissing", ErrGroupWalletMissing(), "ROSCA_003", 409},
		{"MemberWalletMissing", ErrMemberWalletMissing(), "ROSCA_004", 409},
		{"InvalidAmount", ErrInvalidAmount(), "ROSCA_005", 400},
		{"InvalidRound", ErrInvalidRound(), "ROSCA_006", 400},
		{"EmptyRound", ErrEmptyRound(), "ROSCA_007", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestWalletUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientFunds", ErrInsufficientFunds(), "WLT_001", 402},
		{"WalletNotFound", ErrWalletNotFound(), "WLT_002", 404},
		{"UpstreamRejected", ErrUpstreamRejected(fmt.Errorf("x")), "WLT_003", 502},
		{"UpstreamUnavailable", ErrUpstreamUnavailable(fmt.Errorf("x")), "WLT_004", 503},
		{"UpstreamAuth", ErrUpstreamAuth(fmt.Errorf("x")), "WLT_005", 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))
}
