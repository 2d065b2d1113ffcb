package sales

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

const (
	salesService     = "sales-projection"
	useCaseRecord    = "sales.worker.item_purchased"
	useCaseSummarize = "sales.summary"
)

// Projection keeps a per-seller read model of committed purchases. It is fed
// from the event bus and is eventually consistent with the item store.
type Projection struct {
	receipts   domain.Repository
	subscriber domoutbox.Subscriber
	inst       *application.Instrumentation
}

func NewProjection(receipts domain.Repository, subscriber domoutbox.Subscriber, tel observability.Observability) *Projection {
	return &Projection{
		receipts:   receipts,
		subscriber: subscriber,
		inst:       application.NewInstrumentation(salesService, tel),
	}
}

func (p *Projection) Start() {
	if p.subscriber == nil || p.receipts == nil {
		return
	}
	p.subscriber.Subscribe(item.PurchasedEvent{}.EventName(), p.HandlePurchased)
}

func (p *Projection) HandlePurchased(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(item.PurchasedEvent)
	if !ok {
		return nil
	}

	ctx, call := p.inst.Begin(ctx, useCaseRecord, "ItemPurchased",
		attribute.String("event", e.EventName()),
		attribute.Int64("item.id", int64(evt.ItemID)),
	)
	defer func() { call.End(err) }()

	receipt := domain.Receipt{
		ItemID: evt.ItemID,
		Seller: evt.Seller,
		Buyer:  evt.Buyer,
		Title:  evt.Title,
		Price:  evt.Price,
		SoldAt: evt.OccurredAt,
	}
	if err := p.receipts.Append(ctx, receipt); err != nil {
		call.Fail("RECEIPT_APPEND_FAILED")
		return errs.Wrap(err, "sales: append receipt")
	}
	call.Annotate(observability.F("seller", evt.Seller.String()))
	return nil
}

func (p *Projection) Summary(ctx context.Context, seller identity.ID) (_ domain.Summary, err error) {
	ctx, call := p.inst.Begin(ctx, useCaseSummarize, "SalesSummary",
		attribute.String("seller", seller.String()),
	)
	defer func() { call.End(err) }()

	receipts, err := p.receipts.BySeller(ctx, seller)
	if err != nil {
		return domain.Summary{}, errs.Wrap(err, "sales: load receipts")
	}
	return domain.Summarize(seller, receipts), nil
}
