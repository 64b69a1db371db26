package ports

import (
	"context"
	"time"

	"rosca-payflow-bridge/internal/core/domain"
)

// IdempotencyCache is the Redis-layer replay check for contribution
// requests (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ContributionInput holds validated input for one member's contribution to
// a round. Each contribution is an independent call; it carries no knowledge
// of how many members exist or whether others have contributed.
type ContributionInput struct {
	MemberWalletID string
	GroupWalletID  string
	Amount         float64
	GroupID        string
	Round          int
}

// PayoutDistributionInput holds validated input for distributing a round's
// payout. The caller supplies the total (conventionally contribution amount
// times member count); it is not computed or verified here.
type PayoutDistributionInput struct {
	GroupWalletID  string
	MemberWalletID string
	Amount         float64
	GroupID        string
	Round          int
	MemberName     string
}

// RoundMember identifies one member inside a collection plan.
type RoundMember struct {
	MemberWalletID string
	UserID         string
	Name           string
}

// RoundPlan describes a full round collection: every listed member
// contributes Amount to the group wallet.
type RoundPlan struct {
	GroupID       string
	GroupWalletID string
	Round         int
	Amount        float64
	Members       []RoundMember
}

// ContributionResult is the per-member outcome of a round collection.
// Exactly one of Transaction or Err is set.
type ContributionResult struct {
	MemberWalletID string
	Transaction    *domain.Transaction
	Err            error
}

// MemberStats aggregates one side of a member's activity within a group.
type MemberStats struct {
	Total        float64              `json:"total"`
	Count        int                  `json:"count"`
	Transactions []domain.Transaction `json:"transactions"`
}

// RoscaService maps ROSCA domain verbs onto generic wallet operations,
// injecting the deterministic reference/metadata convention that makes the
// domain reconstructible from the PayFlow transaction log. Every operation
// fails exactly when its underlying wallet-service call fails: no retry, no
// rollback, no partial-success smoothing.
type RoscaService interface {
	CreateGroupWallet(ctx context.Context, groupID, groupName, currency, creatorUserID string) (*domain.Wallet, error)
	CreateMemberWallet(ctx context.Context, userID, userName, currency string) (*domain.Wallet, error)

	ProcessContribution(ctx context.Context, in ContributionInput) (*domain.Transaction, error)
	DistributePayout(ctx context.Context, in PayoutDistributionInput) (*domain.Transaction, error)
	// CollectRoundContributions fans the plan's contributions out as
	// independent concurrent calls and joins them into one result per
	// member. A failed member never rolls back the others.
	CollectRoundContributions(ctx context.Context, plan RoundPlan) []ContributionResult

	GetGroupTransactionHistory(ctx context.Context, groupWalletID string, limit int) ([]domain.Transaction, error)
	GetMemberGroupTransactions(ctx context.Context, memberWalletID, groupID string, limit int) ([]domain.Transaction, error)
	CalculateMemberContributions(ctx context.Context, memberWalletID, groupID string) (*MemberStats, error)
	CalculateMemberPayouts(ctx context.Context, memberWalletID, groupID string) (*MemberStats, error)
	// GetMemberNetPosition returns payouts received minus contributions
	// made, over the same fetched page both statistics read.
	GetMemberNetPosition(ctx context.Context, memberWalletID, groupID string) (float64, error)
}
