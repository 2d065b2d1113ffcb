package sales

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
)

// Receipt is the read-model record of one committed purchase.
type Receipt struct {
	ItemID item.ID
	Seller identity.ID
	Buyer  identity.ID
	Title  string
	Price  int64
	SoldAt time.Time
}

// Summary aggregates a seller's receipts.
type Summary struct {
	Seller   identity.ID
	Count    int
	Revenue  int64
	Receipts []Receipt
}

type Repository interface {
	Append(ctx context.Context, r Receipt) error
	BySeller(ctx context.Context, seller identity.ID) ([]Receipt, error)
}

func Summarize(seller identity.ID, receipts []Receipt) Summary {
	s := Summary{Seller: seller, Receipts: receipts}
	for _, r := range receipts {
		s.Count++
		s.Revenue += r.Price
	}
	return s
}
