package ports

import (
	"context"

	"rosca-payflow-bridge/internal/core/domain"

	"github.com/google/uuid"
)

// GroupRepository defines persistence operations for ROSCA group records in
// the host app's own database. Getters return nil, nil when absent.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	SetWalletID(ctx context.Context, id uuid.UUID, walletID string) error
	List(ctx context.Context, limit, offset int) ([]domain.Group, error)
}

// MemberRepository defines persistence operations for group member records.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	SetWalletID(ctx context.Context, id uuid.UUID, walletID string) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
}
