package discount

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

const MaxPercent = 100

// Discount is an advisory percentage attached to an item. It is never
// applied to the purchase price.
type Discount struct {
	ItemID    item.ID
	Percent   int
	SetBy     identity.ID
	UpdatedAt time.Time
}

func New(itemID item.ID, percent int, setBy identity.ID) (*Discount, error) {
	if err := ValidatePercent(percent); err != nil {
		return nil, err
	}
	return &Discount{
		ItemID:    itemID,
		Percent:   percent,
		SetBy:     setBy,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func ValidatePercent(percent int) error {
	if percent < 0 || percent > MaxPercent {
		return errs.Newf(errs.KindInvalidDiscount, "discount: percent must be between 0 and %d, got %d", MaxPercent, percent)
	}
	return nil
}

// Apply returns price reduced by the discount, rounding the reduction down.
func (d *Discount) Apply(price int64) int64 {
	if d == nil {
		return price
	}
	pct := int64(d.Percent)
	// Split price so no intermediate product exceeds price itself.
	reduction := price/MaxPercent*pct + price%MaxPercent*pct/MaxPercent
	result := price - reduction
	if result < 0 {
		return 0
	}
	return result
}

func (d *Discount) Clone() *Discount {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

// SetEvent is emitted whenever an owner sets or overwrites a discount.
type SetEvent struct {
	ItemID     item.ID
	Percent    int
	SetBy      identity.ID
	OccurredAt time.Time
}

func (SetEvent) EventName() string { return "item.discount_set" }

func NewSetEvent(d *Discount) SetEvent {
	return SetEvent{
		ItemID:     d.ItemID,
		Percent:    d.Percent,
		SetBy:      d.SetBy,
		OccurredAt: time.Now().UTC(),
	}
}

type Repository interface {
	// Put stores d, replacing any discount already held for d.ItemID.
	Put(ctx context.Context, d *Discount) error
	Get(ctx context.Context, itemID item.ID) (*Discount, error)
}
