package domain

import "time"

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeDebit    TransactionType = "debit"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionStatus represents the lifecycle state of a transaction.
// Status is owned and advanced exclusively by the wallet service.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
)

// Transaction is a record of money movement at the PayFlow service,
// immutable once it reaches a terminal status. FromWalletID and ToWalletID
// are nil for pure credits/debits. Reference is the caller-supplied
// idempotency/correlation string.
type Transaction struct {
	ID           string            `json:"id"`
	FromWalletID *string           `json:"fromWalletId,omitempty"`
	ToWalletID   *string           `json:"toWalletId,omitempty"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	Type         TransactionType   `json:"type"`
	Status       TransactionStatus `json:"status"`
	Description  string            `json:"description"`
	Reference    string            `json:"reference,omitempty"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted ||
		t.Status == TransactionStatusFailed ||
		t.Status == TransactionStatusCancelled
}
