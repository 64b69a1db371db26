package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"

	"github.com/rs/zerolog"
)

// statsPageLimit is the history page size the statistics operations read.
// Statistics are computed over this single page; a member with more group
// activity than fits in one page needs explicit paging by the caller.
const statsPageLimit = 100

// roscaService implements ports.RoscaService over the PayFlow client port.
// It owns the reference/metadata convention and nothing else: no retries,
// no local state, no cross-call ordering.
type roscaService struct {
	wallets ports.WalletService
	log     zerolog.Logger
}

// NewRoscaService creates a new ROSCA orchestration service.
func NewRoscaService(wallets ports.WalletService, log zerolog.Logger) ports.RoscaService {
	return &roscaService{wallets: wallets, log: log}
}

// CreateGroupWallet creates the dedicated group wallet at PayFlow, tagged so
// it can be recognised in the generic wallet log later.
func (s *roscaService) CreateGroupWallet(ctx context.Context, groupID, groupName, currency, creatorUserID string) (*domain.Wallet, error) {
	wallet, err := s.wallets.CreateWallet(ctx, ports.CreateWalletInput{
		Name:     groupName,
		Type:     domain.WalletTypeGroup,
		Currency: currency,
		UserID:   creatorUserID,
		Metadata: map[string]any{
			domain.MetaKeyType:         domain.MetaTypeGroup,
			domain.MetaKeyRoscaGroupID: groupID,
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("group_id", groupID).
		Str("wallet_id", wallet.ID).
		Str("currency", currency).
		Msg("group wallet created")
	return wallet, nil
}

// CreateMemberWallet creates a member's personal wallet at PayFlow.
func (s *roscaService) CreateMemberWallet(ctx context.Context, userID, userName, currency string) (*domain.Wallet, error) {
	wallet, err := s.wallets.CreateWallet(ctx, ports.CreateWalletInput{
		Name:     userName,
		Type:     domain.WalletTypePersonal,
		Currency: currency,
		UserID:   userID,
		Metadata: map[string]any{
			domain.MetaKeyType: domain.MetaTypeMember,
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("wallet_id", wallet.ID).
		Msg("member wallet created")
	return wallet, nil
}

// ProcessContribution transfers one member's contribution into the group
// wallet, carrying the deterministic round reference and the contribution
// metadata tags.
func (s *roscaService) ProcessContribution(ctx context.Context, in ports.ContributionInput) (*domain.Transaction, error) {
	tx, err := s.wallets.Transfer(ctx, ports.TransferInput{
		FromWalletID: in.MemberWalletID,
		ToWalletID:   in.GroupWalletID,
		Amount:       in.Amount,
		Description:  fmt.Sprintf("ROSCA contribution - round %d", in.Round),
		Reference:    domain.ContributionReference(in.GroupID, in.Round),
		Metadata: map[string]any{
			domain.MetaKeyType:      domain.MetaTypeContribution,
			domain.MetaKeyGroupID:   in.GroupID,
			domain.MetaKeyRound:     in.Round,
			domain.MetaKeyTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("group_id", in.GroupID).
		Int("round", in.Round).
		Str("member_wallet_id", in.MemberWalletID).
		Float64("amount", in.Amount).
		Str("transaction_id", tx.ID).
		Msg("contribution processed")
	return tx, nil
}

// DistributePayout transfers a round's pooled payout from the group wallet
// to the receiving member. The caller supplies the correct total; it is not
// recomputed or verified here.
func (s *roscaService) DistributePayout(ctx context.Context, in ports.PayoutDistributionInput) (*domain.Transaction, error) {
	tx, err := s.wallets.Transfer(ctx, ports.TransferInput{
		FromWalletID: in.GroupWalletID,
		ToWalletID:   in.MemberWalletID,
		Amount:       in.Amount,
		Description:  fmt.Sprintf("ROSCA payout to %s - round %d", in.MemberName, in.Round),
		Reference:    domain.PayoutReference(in.GroupID, in.Round),
		Metadata: map[string]any{
			domain.MetaKeyType:       domain.MetaTypePayout,
			domain.MetaKeyGroupID:    in.GroupID,
			domain.MetaKeyRound:      in.Round,
			domain.MetaKeyMemberName: in.MemberName,
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("group_id", in.GroupID).
		Int("round", in.Round).
		Str("member_wallet_id", in.MemberWalletID).
		Float64("amount", in.Amount).
		Str("transaction_id", tx.ID).
		Msg("payout distributed")
	return tx, nil
}

// CollectRoundContributions issues the plan's contributions as independent
// concurrent transfers and joins them into one result per member, in plan
// order. A failed member leaves the others recorded; remediation belongs to
// the caller.
func (s *roscaService) CollectRoundContributions(ctx context.Context, plan ports.RoundPlan) []ports.ContributionResult {
	results := make([]ports.ContributionResult, len(plan.Members))

	var wg sync.WaitGroup
	for i, member := range plan.Members {
		wg.Add(1)
		go func(i int, member ports.RoundMember) {
			defer wg.Done()
			tx, err := s.ProcessContribution(ctx, ports.ContributionInput{
				MemberWalletID: member.MemberWalletID,
				GroupWalletID:  plan.GroupWalletID,
				Amount:         plan.Amount,
				GroupID:        plan.GroupID,
				Round:          plan.Round,
			})
			results[i] = ports.ContributionResult{
				MemberWalletID: member.MemberWalletID,
				Transaction:    tx,
				Err:            err,
			}
		}(i, member)
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.log.Info().
		Str("group_id", plan.GroupID).
		Int("round", plan.Round).
		Int("members", len(plan.Members)).
		Int("failed", failed).
		Msg("round collection finished")

	return results
}

// GetGroupTransactionHistory returns the group wallet's transaction page
// unfiltered: the group wallet is dedicated to one group.
func (s *roscaService) GetGroupTransactionHistory(ctx context.Context, groupWalletID string, limit int) ([]domain.Transaction, error) {
	return s.wallets.GetWalletTransactions(ctx, groupWalletID, ports.TransactionQuery{Limit: limit})
}

// GetMemberGroupTransactions fetches the member wallet's history page and
// filters it locally to the given group, by metadata group id or by the
// reference substring. This is a client-side filter over one page, not a
// server-side query.
func (s *roscaService) GetMemberGroupTransactions(ctx context.Context, memberWalletID, groupID string, limit int) ([]domain.Transaction, error) {
	txns, err := s.wallets.GetWalletTransactions(ctx, memberWalletID, ports.TransactionQuery{Limit: limit})
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.BelongsToGroup(groupID) {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

// CalculateMemberContributions sums the member's contributions to the group
// over one history page.
func (s *roscaService) CalculateMemberContributions(ctx context.Context, memberWalletID, groupID string) (*ports.MemberStats, error) {
	txns, err := s.GetMemberGroupTransactions(ctx, memberWalletID, groupID, statsPageLimit)
	if err != nil {
		return nil, err
	}
	return reduceStats(txns, (*domain.Transaction).IsContribution), nil
}

// CalculateMemberPayouts sums the payouts the member received from the
// group over one history page.
func (s *roscaService) CalculateMemberPayouts(ctx context.Context, memberWalletID, groupID string) (*ports.MemberStats, error) {
	txns, err := s.GetMemberGroupTransactions(ctx, memberWalletID, groupID, statsPageLimit)
	if err != nil {
		return nil, err
	}
	return reduceStats(txns, (*domain.Transaction).IsPayout), nil
}

// GetMemberNetPosition returns payouts received minus contributions made,
// computed from a single fetched page so both sides see the same data.
func (s *roscaService) GetMemberNetPosition(ctx context.Context, memberWalletID, groupID string) (float64, error) {
	txns, err := s.GetMemberGroupTransactions(ctx, memberWalletID, groupID, statsPageLimit)
	if err != nil {
		return 0, err
	}

	contributions := reduceStats(txns, (*domain.Transaction).IsContribution)
	payouts := reduceStats(txns, (*domain.Transaction).IsPayout)
	return payouts.Total - contributions.Total, nil
}

func reduceStats(txns []domain.Transaction, match func(*domain.Transaction) bool) *ports.MemberStats {
	stats := &ports.MemberStats{Transactions: []domain.Transaction{}}
	for _, tx := range txns {
		if !match(&tx) {
			continue
		}
		stats.Total += tx.Amount
		stats.Count++
		stats.Transactions = append(stats.Transactions, tx)
	}
	return stats
}
