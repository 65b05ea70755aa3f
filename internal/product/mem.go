package product

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepo keeps the catalog in memory. Used by tests and STORE=memory runs.
type MemRepo struct {
	mu    sync.RWMutex
	items map[string]Product
}

func NewMemRepo(seed ...Product) *MemRepo {
	r := &MemRepo{items: make(map[string]Product)}
	_ = r.ReplaceAll(context.Background(), seed)
	return r
}

func (r *MemRepo) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemRepo) ReplaceAll(ctx context.Context, ps []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]Product, len(ps))
	now := time.Now().UTC()
	for _, p := range ps {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt == nil {
			p.CreatedAt = &now
		}
		r.items[p.ID] = p
	}
	return nil
}
