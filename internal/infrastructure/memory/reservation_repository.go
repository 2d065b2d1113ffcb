package memory

import (
	"context"
	"sync"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/reservation"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

type ReservationRepository struct {
	mu           sync.RWMutex
	reservations map[item.ID]*domain.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		reservations: make(map[item.ID]*domain.Reservation),
	}
}

func (r *ReservationRepository) Put(ctx context.Context, res *domain.Reservation) error {
	_ = ctx
	if res == nil {
		return errs.New("reservation repository: reservation is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reservations[res.ItemID] = res.Clone()
	return nil
}

func (r *ReservationRepository) Get(ctx context.Context, itemID item.ID) (*domain.Reservation, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[itemID]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "reservation: none for item %d", itemID)
	}
	return res.Clone(), nil
}
