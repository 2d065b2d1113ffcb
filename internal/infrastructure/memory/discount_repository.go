package memory

import (
	"context"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/discount"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

type DiscountRepository struct {
	mu        sync.RWMutex
	discounts map[item.ID]*domain.Discount
}

func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{
		discounts: make(map[item.ID]*domain.Discount),
	}
}

func (r *DiscountRepository) Put(ctx context.Context, d *domain.Discount) error {
	_ = ctx
	if d == nil {
		return errs.New("discount repository: discount is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.discounts[d.ItemID] = d.Clone()
	return nil
}

func (r *DiscountRepository) Get(ctx context.Context, itemID item.ID) (*domain.Discount, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.discounts[itemID]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "discount: none for item %d", itemID)
	}
	return d.Clone(), nil
}
