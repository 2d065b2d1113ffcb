package item

import (
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
)

// ListedEvent is emitted after a new item has been stored.
type ListedEvent struct {
	ItemID     ID
	Owner      identity.ID
	Price      int64
	Title      string
	OccurredAt time.Time
}

func (ListedEvent) EventName() string { return "item.listed" }

func NewListedEvent(i *Item) ListedEvent {
	return ListedEvent{
		ItemID:     i.ID,
		Owner:      i.Owner,
		Price:      i.Price,
		Title:      i.Title,
		OccurredAt: time.Now().UTC(),
	}
}

// PurchasedEvent is emitted once a purchase has committed.
type PurchasedEvent struct {
	ItemID     ID
	Seller     identity.ID
	Buyer      identity.ID
	Price      int64
	Title      string
	OccurredAt time.Time
}

func (PurchasedEvent) EventName() string { return "item.purchased" }

func NewPurchasedEvent(seller identity.ID, sold *Item) PurchasedEvent {
	return PurchasedEvent{
		ItemID:     sold.ID,
		Seller:     seller,
		Buyer:      sold.Owner,
		Price:      sold.Price,
		Title:      sold.Title,
		OccurredAt: time.Now().UTC(),
	}
}
