package memory

import (
	"context"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/category"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

type CategoryRepository struct {
	mu         sync.RWMutex
	seq        *id.Sequence
	categories map[domain.ID]*domain.Category
	order      []domain.ID
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		seq:        id.NewSequence(),
		categories: make(map[domain.ID]*domain.Category),
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, c *domain.Category) (domain.ID, error) {
	_ = ctx
	if c == nil {
		return 0, errs.New("category repository: category is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = domain.ID(r.seq.Next())
	r.categories[c.ID] = c.Clone()
	r.order = append(r.order, c.ID)
	return c.ID, nil
}

func (r *CategoryRepository) Get(ctx context.Context, categoryID domain.ID) (*domain.Category, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[categoryID]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "category: %d not found", categoryID)
	}
	return c.Clone(), nil
}

// List returns every category in ID order.
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Category, 0, len(r.order))
	for _, categoryID := range r.order {
		out = append(out, r.categories[categoryID].Clone())
	}
	return out, nil
}
