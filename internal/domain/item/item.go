package item

import (
	"strings"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

// ID identifies an item. IDs are assigned from 1 upwards and never reused.
type ID int64

type Status string

const (
	StatusListed Status = "listed"
	StatusSold   Status = "sold"
)

type Item struct {
	ID        ID
	Owner     identity.ID
	Price     int64
	Title     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a listed item. It does not validate price or title; see Validate.
func New(id ID, owner identity.ID, price int64, title string) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:        id,
		Owner:     owner,
		Price:     price,
		Title:     title,
		Status:    StatusListed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate applies the optional strict listing rules.
func Validate(price int64, title string) error {
	if price <= 0 {
		return errs.Newf(errs.KindInvalidListing, "item: price must be greater than zero, got %d", price)
	}
	if strings.TrimSpace(title) == "" {
		return errs.Newf(errs.KindInvalidListing, "item: title is required")
	}
	return nil
}

func (i *Item) IsListed() bool { return i.Status == StatusListed }

// Sell moves the item to the buyer and closes the listing. Price and title
// are left untouched.
func (i *Item) Sell(buyer identity.ID) error {
	next, err := stateOf(i.Status).OnPurchase(i, buyer)
	if err != nil {
		return err
	}
	i.Status = next.Status()
	i.touch()
	return nil
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}
