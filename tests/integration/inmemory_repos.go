package integration

import (
	"context"
	"sync"

	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"

	"github.com/google/uuid"
)

// In-memory repository implementations backing the integration stack in
// place of PostgreSQL.

type inMemoryGroupRepo struct {
	mu     sync.Mutex
	groups map[uuid.UUID]domain.Group
}

func newInMemoryGroupRepo() *inMemoryGroupRepo {
	return &inMemoryGroupRepo{groups: make(map[uuid.UUID]domain.Group)}
}

var _ ports.GroupRepository = (*inMemoryGroupRepo)(nil)

func (r *inMemoryGroupRepo) Create(_ context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[group.ID] = *group
	return nil
}

func (r *inMemoryGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *inMemoryGroupRepo) SetWalletID(_ context.Context, id uuid.UUID, walletID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := r.groups[id]
	g.WalletID = &walletID
	r.groups[id] = g
	return nil
}

func (r *inMemoryGroupRepo) List(_ context.Context, limit, offset int) ([]domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	return out, nil
}

type inMemoryMemberRepo struct {
	mu      sync.Mutex
	members map[uuid.UUID]domain.Member
	order   []uuid.UUID
}

func newInMemoryMemberRepo() *inMemoryMemberRepo {
	return &inMemoryMemberRepo{members: make(map[uuid.UUID]domain.Member)}
}

var _ ports.MemberRepository = (*inMemoryMemberRepo)(nil)

func (r *inMemoryMemberRepo) Create(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member.ID] = *member
	r.order = append(r.order, member.ID)
	return nil
}

func (r *inMemoryMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *inMemoryMemberRepo) SetWalletID(_ context.Context, id uuid.UUID, walletID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.members[id]
	m.WalletID = &walletID
	r.members[id] = m
	return nil
}

func (r *inMemoryMemberRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Member, 0)
	for _, id := range r.order {
		if m := r.members[id]; m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}
