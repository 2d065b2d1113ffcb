package reservation

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
)

// Reservation is a non-binding, time-boxed hold recorded against an item.
// The expiry is stored data; nothing in the ledger enforces it.
type Reservation struct {
	ItemID     item.ID
	Reserver   identity.ID
	TTL        time.Duration
	ReservedAt time.Time
	ExpiresAt  time.Time
}

func New(itemID item.ID, reserver identity.ID, ttl time.Duration, now time.Time) *Reservation {
	return &Reservation{
		ItemID:     itemID,
		Reserver:   reserver,
		TTL:        ttl,
		ReservedAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

// ActiveAt reports whether the hold has not yet expired at t.
func (r *Reservation) ActiveAt(t time.Time) bool {
	return r != nil && t.Before(r.ExpiresAt)
}

func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

// ReservedEvent is emitted whenever a reservation is recorded or replaced.
type ReservedEvent struct {
	ItemID     item.ID
	Reserver   identity.ID
	ExpiresAt  time.Time
	OccurredAt time.Time
}

func (ReservedEvent) EventName() string { return "item.reserved" }

func NewReservedEvent(r *Reservation) ReservedEvent {
	return ReservedEvent{
		ItemID:     r.ItemID,
		Reserver:   r.Reserver,
		ExpiresAt:  r.ExpiresAt,
		OccurredAt: time.Now().UTC(),
	}
}

type Repository interface {
	// Put stores r, replacing any reservation already held for r.ItemID.
	Put(ctx context.Context, r *Reservation) error
	Get(ctx context.Context, itemID item.ID) (*Reservation, error)
}
