package handler

import (
	"errors"
	"net/http"

	"rosca-payflow-bridge/internal/adapter/payflow"
	"rosca-payflow-bridge/pkg/apperror"
)

// upstreamError maps a wallet-service call error to an AppError. API errors
// carry the upstream status through; transport errors surface as WLT_004.
func upstreamError(err error) *apperror.AppError {
	var apiErr *payflow.APIError
	if !errors.As(err, &apiErr) {
		return apperror.ErrUpstreamUnavailable(err)
	}
	switch apiErr.Status {
	case http.StatusPaymentRequired:
		return apperror.Wrap("WLT_001", "Insufficient balance in wallet", http.StatusPaymentRequired, err)
	case http.StatusNotFound:
		return apperror.Wrap("WLT_002", "Wallet not found", http.StatusNotFound, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperror.ErrUpstreamAuth(err)
	default:
		return apperror.ErrUpstreamRejected(err)
	}
}
