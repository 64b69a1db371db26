package postgres

import (
	"context"
	"errors"
	"fmt"

	"rosca-payflow-bridge/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemberRepo implements ports.MemberRepository.
type MemberRepo struct {
	pool Pool
}

// NewMemberRepo creates a new MemberRepo.
func NewMemberRepo(pool Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

// Create inserts a new member record.
func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (id, group_id, user_id, name, wallet_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.GroupID, m.UserID, m.Name,
		m.WalletID, m.Position, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// GetByID fetches a member by its UUID. Returns nil, nil when absent.
func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	query := `SELECT id, group_id, user_id, name, wallet_id, position, created_at, updated_at
		FROM members WHERE id = $1`

	m := &domain.Member{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.Name,
		&m.WalletID, &m.Position, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member by id: %w", err)
	}
	return m, nil
}

// SetWalletID records the PayFlow wallet created for the member.
func (r *MemberRepo) SetWalletID(ctx context.Context, id uuid.UUID, walletID string) error {
	query := `UPDATE members SET wallet_id = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, walletID)
	if err != nil {
		return fmt.Errorf("set member wallet id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set member wallet id: member %s not found", id)
	}
	return nil
}

// ListByGroup returns the group's members in rotation order.
func (r *MemberRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error) {
	query := `SELECT id, group_id, user_id, name, wallet_id, position, created_at, updated_at
		FROM members WHERE group_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.UserID, &m.Name,
			&m.WalletID, &m.Position, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
