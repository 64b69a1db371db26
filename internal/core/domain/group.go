package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group is the host-app record of a ROSCA group. WalletID is filled in once
// the group wallet has been created at the PayFlow service.
type Group struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Currency           string    `json:"currency"`
	ContributionAmount float64   `json:"contribution_amount"`
	WalletID           *string   `json:"wallet_id,omitempty"`
	CreatorUserID      string    `json:"creator_user_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Member is the host-app record of a group member. Position is the member's
// slot in the payout rotation. WalletID is filled in once the member wallet
// has been created at the PayFlow service.
type Member struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	WalletID  *string   `json:"wallet_id,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
