package memory

import (
	"context"
	"sync"

	"github.com/choreworld/choreworld/internal/domain/chore"
)

type ChoreRepository struct {
	mu     sync.RWMutex
	items  map[string]chore.Chore
	orders []string
}

func NewChoreRepository(chores []chore.Chore) *ChoreRepository {
	items := make(map[string]chore.Chore, len(chores))
	orders := make([]string, 0, len(chores))

	for _, c := range chores {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &ChoreRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ChoreRepository) ListActive(_ context.Context, householdID string) ([]chore.Chore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chore.Chore, 0, len(r.orders))
	for _, id := range r.orders {
		c := r.items[id]
		if c.HouseholdID == householdID && c.IsActive {
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *ChoreRepository) GetByID(_ context.Context, householdID, choreID string) (chore.Chore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[choreID]
	if !ok || c.HouseholdID != householdID {
		return chore.Chore{}, false, nil
	}

	return c, true, nil
}

func (r *ChoreRepository) Create(_ context.Context, c chore.Chore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		r.orders = append(r.orders, c.ID)
	}
	r.items[c.ID] = c

	return nil
}

func (r *ChoreRepository) Update(_ context.Context, c chore.Chore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return nil
	}
	r.items[c.ID] = c

	return nil
}

func (r *ChoreRepository) Deactivate(_ context.Context, householdID, choreID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[choreID]
	if !ok || c.HouseholdID != householdID {
		return nil
	}
	c.IsActive = false
	r.items[choreID] = c

	return nil
}
