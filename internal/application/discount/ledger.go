package discount

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/discount"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

const (
	discountService = "discount-ledger"
	useCaseSet      = "discount.set"
	useCaseGet      = "discount.get"
	useCaseQuote    = "discount.quote"
)

// ItemReader is the view of the item store the ledger needs. View must hold
// the item's write lock while fn runs so ownership cannot change mid-Set.
type ItemReader interface {
	Get(ctx context.Context, id item.ID) (*item.Item, error)
	View(ctx context.Context, id item.ID, fn func(it *item.Item) error) error
}

// Ledger records advisory discounts. A discount never changes what a
// purchase charges.
type Ledger struct {
	items     ItemReader
	discounts domain.Repository
	publisher domoutbox.Publisher
	inst      *application.Instrumentation
}

func NewLedger(
	items ItemReader,
	discounts domain.Repository,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *Ledger {
	return &Ledger{
		items:     items,
		discounts: discounts,
		publisher: publisher,
		inst:      application.NewInstrumentation(discountService, tel),
	}
}

type SetInput struct {
	ItemID  item.ID
	Percent int
	Caller  identity.ID
}

// Set stores or overwrites the discount for an item. Checks run in a fixed
// order: item exists, caller owns it, percent is in range. The checks and the
// write happen under the item's lock, so a concurrent purchase either lands
// before the ownership check or after the write.
func (l *Ledger) Set(ctx context.Context, in SetInput) (err error) {
	ctx, call := l.inst.Begin(ctx, useCaseSet, "SetDiscount",
		attribute.Int64("item.id", int64(in.ItemID)),
		attribute.Int("discount.percent", in.Percent),
		attribute.String("caller", in.Caller.String()),
	)
	defer func() { call.End(err) }()

	var d *domain.Discount
	err = l.items.View(ctx, in.ItemID, func(it *item.Item) error {
		if it.Owner != in.Caller {
			return errs.Newf(errs.KindNotOwner, "discount: %s does not own item %d", in.Caller, in.ItemID)
		}

		next, err := domain.New(in.ItemID, in.Percent, in.Caller)
		if err != nil {
			return err
		}
		if err := l.discounts.Put(ctx, next); err != nil {
			call.Fail("REPO_PUT_FAILED")
			return errs.Wrap(err, "discount: put")
		}
		d = next
		return nil
	})
	if err != nil {
		return err
	}

	if pubErr := l.inst.Publish(ctx, l.publisher, domain.NewSetEvent(d)); pubErr != nil {
		call.Annotate(observability.F("event_publish_error", pubErr.Error()))
	}
	return nil
}

// Get returns the stored discount; found is false when none was ever set.
func (l *Ledger) Get(ctx context.Context, itemID item.ID) (_ *domain.Discount, found bool, err error) {
	ctx, call := l.inst.Begin(ctx, useCaseGet, "GetDiscount",
		attribute.Int64("item.id", int64(itemID)),
	)
	defer func() { call.End(err) }()

	return l.lookup(ctx, itemID)
}

// Quote returns the item price with its discount applied, or the plain price
// when there is none. The quote is informational.
func (l *Ledger) Quote(ctx context.Context, itemID item.ID) (_ int64, err error) {
	ctx, call := l.inst.Begin(ctx, useCaseQuote, "QuoteDiscount",
		attribute.Int64("item.id", int64(itemID)),
	)
	defer func() { call.End(err) }()

	it, err := l.items.Get(ctx, itemID)
	if err != nil {
		return 0, err
	}
	d, _, err := l.lookup(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return d.Apply(it.Price), nil
}

func (l *Ledger) lookup(ctx context.Context, itemID item.ID) (*domain.Discount, bool, error) {
	d, err := l.discounts.Get(ctx, itemID)
	switch {
	case err == nil:
		return d, true, nil
	case errs.Is(err, errs.ErrNotFound):
		return nil, false, nil
	default:
		return nil, false, errs.Wrap(err, "discount: get")
	}
}
