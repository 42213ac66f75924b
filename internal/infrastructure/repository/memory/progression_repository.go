package memory

import (
	"context"
	"sync"

	"github.com/choreworld/choreworld/internal/domain/progression"
)

type ProgressionRepository struct {
	mu     sync.RWMutex
	items  map[string]progression.Progression
	orders []string
}

func NewProgressionRepository() *ProgressionRepository {
	return &ProgressionRepository{
		items: make(map[string]progression.Progression),
	}
}

func progressionKey(householdID, memberID string) string {
	return householdID + "/" + memberID
}

func (r *ProgressionRepository) Get(_ context.Context, householdID, memberID string) (progression.Progression, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[progressionKey(householdID, memberID)]
	if !ok {
		return progression.NewDefault(householdID, memberID), nil
	}

	return p, nil
}

func (r *ProgressionRepository) Set(_ context.Context, p progression.Progression) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressionKey(p.HouseholdID, p.MemberID)
	if _, ok := r.items[key]; !ok {
		r.orders = append(r.orders, key)
	}
	r.items[key] = p

	return nil
}

func (r *ProgressionRepository) AddXP(_ context.Context, householdID, memberID string, amount int) (progression.Progression, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressionKey(householdID, memberID)
	p, ok := r.items[key]
	if !ok {
		p = progression.NewDefault(householdID, memberID)
		r.orders = append(r.orders, key)
	}

	p.TotalXP += amount
	p.Level = progression.LevelFromTotalXP(p.TotalXP)
	r.items[key] = p

	return p, nil
}

func (r *ProgressionRepository) ListByHousehold(_ context.Context, householdID string) ([]progression.Progression, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]progression.Progression, 0, len(r.orders))
	for _, key := range r.orders {
		p := r.items[key]
		if p.HouseholdID == householdID {
			out = append(out, p)
		}
	}

	return out, nil
}
