package order

import (
	"context"
	"sort"
	"sync"
)

// MemRepo keeps orders in memory. Used by tests and STORE=memory runs.
type MemRepo struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewMemRepo() *MemRepo {
	return &MemRepo{orders: make(map[string]Order)}
}

func (r *MemRepo) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	return nil
}

func (r *MemRepo) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Order, Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, "", ErrNotFound
	}
	prev := o.Status
	o.Status = status
	r.orders[id] = o
	return &o, prev, nil
}
