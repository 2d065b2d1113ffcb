package memory

import (
	"context"
	"sync"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/sales"
)

type SalesRepository struct {
	mu       sync.RWMutex
	bySeller map[identity.ID][]domain.Receipt
}

func NewSalesRepository() *SalesRepository {
	return &SalesRepository{
		bySeller: make(map[identity.ID][]domain.Receipt),
	}
}

func (r *SalesRepository) Append(ctx context.Context, receipt domain.Receipt) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeller[receipt.Seller] = append(r.bySeller[receipt.Seller], receipt)
	return nil
}

// BySeller returns the seller's receipts in the order they were appended.
func (r *SalesRepository) BySeller(ctx context.Context, seller identity.ID) ([]domain.Receipt, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	receipts := r.bySeller[seller]
	out := make([]domain.Receipt, len(receipts))
	copy(out, receipts)
	return out, nil
}
