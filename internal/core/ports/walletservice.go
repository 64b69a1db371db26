package ports

import (
	"context"
	"time"

	"rosca-payflow-bridge/internal/core/domain"
)

// CreateWalletInput holds the fields for wallet creation.
type CreateWalletInput struct {
	Name     string
	Type     domain.WalletType
	Currency string
	UserID   string
	Metadata map[string]any
}

// UpdateWalletInput holds the mutable wallet fields. Nil means unchanged.
type UpdateWalletInput struct {
	Name   *string
	Active *bool
}

// TransactionQuery holds pagination and filtering for transaction history.
// Zero Limit means the service default; Status "" means all statuses.
type TransactionQuery struct {
	Limit  int
	Offset int
	Status domain.TransactionStatus
}

// TransferInput holds the fields for a wallet-to-wallet transfer.
type TransferInput struct {
	FromWalletID string
	ToWalletID   string
	Amount       float64
	Description  string
	Reference    string
	Metadata     map[string]any
}

// PaymentInput holds the fields for a gateway-backed payment.
type PaymentInput struct {
	WalletID    string
	Amount      float64
	Currency    string
	Description string
	Reference   string
	Metadata    map[string]any
}

// PayoutInput holds the fields for a payout-rail disbursement.
type PayoutInput struct {
	WalletID    string
	Amount      float64
	Currency    string
	Description string
	Reference   string
	Metadata    map[string]any
}

// HealthStatus is the PayFlow liveness response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// WalletService is the typed client surface of the remote PayFlow wallet
// service. Every call is a single request/response round trip: no retries,
// no caching, no local state. Any non-2xx response surfaces as a
// *payflow.APIError carrying the status code and raw body; callers decide
// whether to retry, surface or translate it.
type WalletService interface {
	CreateWallet(ctx context.Context, in CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	GetWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
	UpdateWallet(ctx context.Context, walletID string, upd UpdateWalletInput) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, walletID string) error

	GetWalletTransactions(ctx context.Context, walletID string, q TransactionQuery) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	Transfer(ctx context.Context, in TransferInput) (*domain.Transaction, error)
	CreditWallet(ctx context.Context, walletID string, amount float64, description string, metadata map[string]any) (*domain.Transaction, error)
	DebitWallet(ctx context.Context, walletID string, amount float64, description string, metadata map[string]any) (*domain.Transaction, error)

	CreatePayment(ctx context.Context, in PaymentInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	CancelPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	CreatePayout(ctx context.Context, in PayoutInput) (*domain.Transaction, error)
	GetPayout(ctx context.Context, payoutID string) (*domain.Transaction, error)

	// GetWalletBalance is a convenience projection over GetWallet, not a
	// separate server call.
	GetWalletBalance(ctx context.Context, walletID string) (float64, error)
	// ValidateWallet collapses any failure to false; wallet-not-found and
	// service-down are indistinguishable at this call.
	ValidateWallet(ctx context.Context, walletID string) bool
	HealthCheck(ctx context.Context) (*HealthStatus, error)
}
