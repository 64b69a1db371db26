package dto

import "rosca-payflow-bridge/internal/core/domain"

// CreateGroupRequest is the request body for group creation.
type CreateGroupRequest struct {
	Name               string  `json:"name" binding:"required,min=1,max=100"`
	Currency           string  `json:"currency" binding:"required,len=3"`
	ContributionAmount float64 `json:"contribution_amount" binding:"required,gt=0"`
	CreatorUserID      string  `json:"creator_user_id" binding:"required,safe_id"`
}

// AddMemberRequest is the request body for adding a member to a group.
type AddMemberRequest struct {
	UserID   string `json:"user_id" binding:"required,safe_id"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Position int    `json:"position" binding:"required,gt=0"`
}

// ContributionRequest is the request body for a single member contribution.
type ContributionRequest struct {
	MemberID string   `json:"member_id" binding:"required,uuid"`
	Amount   *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

// PayoutRequest is the request body for distributing a round's payout.
type PayoutRequest struct {
	MemberID string   `json:"member_id" binding:"required,uuid"`
	Amount   *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

// GroupResponse is the response body for group records.
type GroupResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Currency           string  `json:"currency"`
	ContributionAmount float64 `json:"contribution_amount"`
	WalletID           *string `json:"wallet_id,omitempty"`
	CreatorUserID      string  `json:"creator_user_id"`
	CreatedAt          string  `json:"created_at"`
}

// MemberResponse is the response body for member records.
type MemberResponse struct {
	ID       string  `json:"id"`
	GroupID  string  `json:"group_id"`
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	WalletID *string `json:"wallet_id,omitempty"`
	Position int     `json:"position"`
}

// TransactionResponse is the response body for wallet-service transactions.
type TransactionResponse struct {
	ID           string         `json:"id"`
	FromWalletID *string        `json:"from_wallet_id,omitempty"`
	ToWalletID   *string        `json:"to_wallet_id,omitempty"`
	Amount       float64        `json:"amount"`
	Currency     string         `json:"currency"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	Description  string         `json:"description"`
	Reference    string         `json:"reference,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    string         `json:"created_at"`
}

// CollectionMemberResult is the per-member outcome of a round collection.
type CollectionMemberResult struct {
	MemberWalletID string               `json:"member_wallet_id"`
	Transaction    *TransactionResponse `json:"transaction,omitempty"`
	Error          string               `json:"error,omitempty"`
}

// CollectionResponse summarises a round collection.
type CollectionResponse struct {
	GroupID   string                   `json:"group_id"`
	Round     int                      `json:"round"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Results   []CollectionMemberResult `json:"results"`
}

// MemberStatsResponse aggregates a member's activity within a group.
type MemberStatsResponse struct {
	ContributionsTotal float64 `json:"contributions_total"`
	ContributionsCount int     `json:"contributions_count"`
	PayoutsTotal       float64 `json:"payouts_total"`
	PayoutsCount       int     `json:"payouts_count"`
	NetPosition        float64 `json:"net_position"`
}

// TransactionListResponse wraps a transaction list.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Count int                   `json:"count"`
}

// FromTransaction converts a domain transaction to its response shape.
func FromTransaction(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		FromWalletID: tx.FromWalletID,
		ToWalletID:   tx.ToWalletID,
		Amount:       tx.Amount,
		Currency:     tx.Currency,
		Type:         string(tx.Type),
		Status:       string(tx.Status),
		Description:  tx.Description,
		Reference:    tx.Reference,
		Metadata:     tx.Metadata,
		CreatedAt:    tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromGroup converts a domain group to its response shape.
func FromGroup(g *domain.Group) GroupResponse {
	return GroupResponse{
		ID:                 g.ID.String(),
		Name:               g.Name,
		Currency:           g.Currency,
		ContributionAmount: g.ContributionAmount,
		WalletID:           g.WalletID,
		CreatorUserID:      g.CreatorUserID,
		CreatedAt:          g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromMember converts a domain member to its response shape.
func FromMember(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:       m.ID.String(),
		GroupID:  m.GroupID.String(),
		UserID:   m.UserID,
		Name:     m.Name,
		WalletID: m.WalletID,
		Position: m.Position,
	}
}
