package domain

import "time"

// WalletType represents the kind of wallet held at the PayFlow service.
type WalletType string

const (
	WalletTypePersonal WalletType = "personal"
	WalletTypeBusiness WalletType = "business"
	WalletTypeGroup    WalletType = "group"
)

// Wallet is a currency-denominated account tracked by the remote PayFlow
// wallet service. The balance is server-computed and never mutated by this
// layer; it only reflects completed transfers, credits and debits recorded
// by the wallet service.
type Wallet struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      WalletType     `json:"type"`
	Currency  string         `json:"currency"`
	Balance   float64        `json:"balance"`
	Active    bool           `json:"active"`
	UserID    string         `json:"userId"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
