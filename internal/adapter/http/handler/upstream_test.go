package handler

import (
	"errors"
	"fmt"
	"testing"

	"rosca-payflow-bridge/internal/adapter/payflow"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       string
		httpStatus int
	}{
		{"insufficient funds passes 402 through", &payflow.APIError{Status: 402, Body: `{"error":"insufficient funds"}`}, "WLT_001", 402},
		{"wallet not found passes 404 through", &payflow.APIError{Status: 404, Body: `{"error":"not found"}`}, "WLT_002", 404},
		{"unauthorized maps to bad gateway", &payflow.APIError{Status: 401, Body: "unauthorized"}, "WLT_005", 502},
		{"forbidden maps to bad gateway", &payflow.APIError{Status: 403, Body: "forbidden"}, "WLT_005", 502},
		{"other API errors map to bad gateway", &payflow.APIError{Status: 500, Body: "boom"}, "WLT_003", 502},
		{"transport error maps to unavailable", fmt.Errorf("dial tcp: connection refused"), "WLT_004", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := upstreamError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.httpStatus, appErr.HTTPStatus)
			assert.True(t, errors.Is(appErr, tt.err))
		})
	}
}

func TestUpstreamError_WrappedAPIError(t *testing.T) {
	inner := &payflow.APIError{Status: 402, Body: "no funds"}
	wrapped := fmt.Errorf("processing contribution: %w", inner)

	appErr := upstreamError(wrapped)
	assert.Equal(t, "WLT_001", appErr.Code)
}
