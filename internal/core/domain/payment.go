package domain

import "time"

// PaymentStatus represents the lifecycle state of a gateway-backed payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is a gateway-backed payment resource at the PayFlow service.
// It is part of the generic client surface but sits outside the ROSCA flow.
type Payment struct {
	ID          string         `json:"id"`
	WalletID    string         `json:"walletId"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Status      PaymentStatus  `json:"status"`
	Description string         `json:"description"`
	Reference   string         `json:"reference,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
