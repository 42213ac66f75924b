package memory

import (
	"context"
	"sync"

	"github.com/choreworld/choreworld/internal/domain/member"
)

type MemberRepository struct {
	mu     sync.RWMutex
	items  map[string]member.Member
	orders []string
}

func NewMemberRepository(members []member.Member) *MemberRepository {
	items := make(map[string]member.Member, len(members))
	orders := make([]string, 0, len(members))

	for _, m := range members {
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MemberRepository{
		items:  items,
		orders: orders,
	}
}

// SetEligible flips a member's eligibility, used to simulate members leaving a
// rotation between periods.
func (r *MemberRepository) SetEligible(memberID string, eligible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.items[memberID]; ok {
		m.IsEligible = eligible
		r.items[memberID] = m
	}
}

func (r *MemberRepository) ListEligible(_ context.Context, householdID string) ([]member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]member.Member, 0, len(r.orders))
	for _, id := range r.orders {
		m := r.items[id]
		if m.HouseholdID == householdID && m.IsEligible {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *MemberRepository) GetByID(_ context.Context, householdID, memberID string) (member.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[memberID]
	if !ok || m.HouseholdID != householdID {
		return member.Member{}, false, nil
	}

	return m, true, nil
}
