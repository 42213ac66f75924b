package memory

import (
	"context"
	"sync"

	"github.com/choreworld/choreworld/internal/domain/household"
)

type HouseholdRepository struct {
	mu     sync.RWMutex
	items  map[string]household.Household
	orders []string
}

func NewHouseholdRepository(households []household.Household) *HouseholdRepository {
	items := make(map[string]household.Household, len(households))
	orders := make([]string, 0, len(households))

	for _, h := range households {
		items[h.ID] = h
		orders = append(orders, h.ID)
	}

	return &HouseholdRepository{
		items:  items,
		orders: orders,
	}
}

func (r *HouseholdRepository) ListActive(_ context.Context) ([]household.Household, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]household.Household, 0, len(r.orders))
	for _, id := range r.orders {
		if h := r.items[id]; h.IsActive {
			out = append(out, h)
		}
	}

	return out, nil
}

func (r *HouseholdRepository) GetByID(_ context.Context, householdID string) (household.Household, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.items[householdID]
	if !ok {
		return household.Household{}, false, nil
	}

	return h, true, nil
}
