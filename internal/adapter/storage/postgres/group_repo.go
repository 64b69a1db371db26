package postgres

import (
	"context"
	"errors"
	"fmt"

	"rosca-payflow-bridge/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GroupRepo implements ports.GroupRepository.
type GroupRepo struct {
	pool Pool
}

// NewGroupRepo creates a new GroupRepo.
func NewGroupRepo(pool Pool) *GroupRepo {
	return &GroupRepo{pool: pool}
}

// Create inserts a new group record.
func (r *GroupRepo) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (id, name, currency, contribution_amount, wallet_id, creator_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		g.ID, g.Name, g.Currency, g.ContributionAmount,
		g.WalletID, g.CreatorUserID, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID fetches a group by its UUID. Returns nil, nil when absent.
func (r *GroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `SELECT id, name, currency, contribution_amount, wallet_id, creator_user_id, created_at, updated_at
		FROM groups WHERE id = $1`

	g := &domain.Group{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Currency, &g.ContributionAmount,
		&g.WalletID, &g.CreatorUserID, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group by id: %w", err)
	}
	return g, nil
}

// SetWalletID records the PayFlow wallet created for the group.
func (r *GroupRepo) SetWalletID(ctx context.Context, id uuid.UUID, walletID string) error {
	query := `UPDATE groups SET wallet_id = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, walletID)
	if err != nil {
		return fmt.Errorf("set group wallet id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set group wallet id: group %s not found", id)
	}
	return nil
}

// List returns groups ordered by creation time, newest first.
func (r *GroupRepo) List(ctx context.Context, limit, offset int) ([]domain.Group, error) {
	query := `SELECT id, name, currency, contribution_amount, wallet_id, creator_user_id, created_at, updated_at
		FROM groups ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Currency, &g.ContributionAmount,
			&g.WalletID, &g.CreatorUserID, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
