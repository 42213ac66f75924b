package memory

import (
	"context"
	"sync"

	"github.com/choreworld/choreworld/internal/domain/duty"
)

type DutyRepository struct {
	mu     sync.RWMutex
	items  map[string]duty.Type
	orders []string
	// rotation orders keyed by householdID + "/" + dutyTypeID
	rotations map[string][]string
}

func NewDutyRepository(types []duty.Type) *DutyRepository {
	items := make(map[string]duty.Type, len(types))
	orders := make([]string, 0, len(types))

	for _, t := range types {
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &DutyRepository{
		items:     items,
		orders:    orders,
		rotations: make(map[string][]string),
	}
}

func (r *DutyRepository) ListActive(_ context.Context, householdID string) ([]duty.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]duty.Type, 0, len(r.orders))
	for _, id := range r.orders {
		t := r.items[id]
		if t.HouseholdID == householdID && t.IsActive {
			out = append(out, t)
		}
	}

	return out, nil
}

func (r *DutyRepository) GetByID(_ context.Context, householdID, dutyTypeID string) (duty.Type, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[dutyTypeID]
	if !ok || t.HouseholdID != householdID {
		return duty.Type{}, false, nil
	}

	return t, true, nil
}

func (r *DutyRepository) Create(_ context.Context, t duty.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[t.ID]; !ok {
		r.orders = append(r.orders, t.ID)
	}
	r.items[t.ID] = t

	return nil
}

func (r *DutyRepository) Update(_ context.Context, t duty.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[t.ID]; !ok {
		return nil
	}
	r.items[t.ID] = t

	return nil
}

func (r *DutyRepository) Deactivate(_ context.Context, householdID, dutyTypeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[dutyTypeID]
	if !ok || t.HouseholdID != householdID {
		return nil
	}
	t.IsActive = false
	r.items[dutyTypeID] = t

	return nil
}

func (r *DutyRepository) GetRotationOrder(_ context.Context, householdID, dutyTypeID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order := r.rotations[householdID+"/"+dutyTypeID]
	out := make([]string, len(order))
	copy(out, order)

	return out, nil
}

func (r *DutyRepository) SetRotationOrder(_ context.Context, householdID, dutyTypeID string, memberIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := make([]string, len(memberIDs))
	copy(order, memberIDs)
	r.rotations[householdID+"/"+dutyTypeID] = order

	return nil
}
