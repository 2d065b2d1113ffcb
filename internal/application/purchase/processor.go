package purchase

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

const (
	purchaseService  = "purchase-processor"
	useCasePurchase  = "item.purchase"
	paymentPeer      = "payment"
	transferEndpoint = "transfer"
)

var errTransferRequired = errs.New("purchase: transfer capability is required")

var _ application.UseCase[PurchaseInput, *PurchaseResult] = (*Processor)(nil)

// Processor couples a funds transfer to an ownership change. The listed
// check, the transfer and the transition run under the item's write lock, so
// concurrent purchases of one item see exactly one winner.
type Processor struct {
	items     item.Repository
	publisher domoutbox.Publisher
	inst      *application.Instrumentation
}

func NewProcessor(items item.Repository, publisher domoutbox.Publisher, tel observability.Observability) *Processor {
	return &Processor{
		items:     items,
		publisher: publisher,
		inst:      application.NewInstrumentation(purchaseService, tel),
	}
}

type PurchaseInput struct {
	ItemID item.ID
	Buyer  identity.ID
	// Transfer pays the seller on the buyer's behalf.
	Transfer payment.Transferor
}

type PurchaseResult struct {
	ItemID item.ID
	Seller identity.ID
	Buyer  identity.ID
	Price  int64
}

func (p *Processor) Purchase(ctx context.Context, in PurchaseInput) error {
	_, err := p.Execute(ctx, in)
	return err
}

func (p *Processor) Execute(ctx context.Context, in PurchaseInput) (_ *PurchaseResult, err error) {
	ctx, call := p.inst.Begin(ctx, useCasePurchase, "PurchaseItem",
		attribute.Int64("item.id", int64(in.ItemID)),
		attribute.String("buyer", in.Buyer.String()),
	)
	defer func() { call.End(err) }()

	var seller identity.ID
	sold, err := p.items.Update(ctx, in.ItemID, func(it *item.Item) error {
		if !it.IsListed() {
			return errs.Newf(errs.KindNotFound, "purchase: item %d is not listed", it.ID)
		}
		if in.Transfer == nil {
			return errTransferRequired
		}
		seller = it.Owner

		paid := false
		p.inst.External(ctx, paymentPeer, transferEndpoint, func(ctx context.Context) string {
			paid = in.Transfer.Transfer(ctx, it.Price, seller)
			if paid {
				return application.OutcomeSuccess
			}
			return "declined"
		})
		if !paid {
			return errs.Newf(errs.KindPaymentFailed, "purchase: transfer of %d to %s declined", it.Price, seller)
		}
		call.Event("payment.transferred", attribute.Int64("amount", it.Price))

		return it.Sell(in.Buyer)
	})
	if err != nil {
		if errs.Is(err, errTransferRequired) {
			call.Fail("TRANSFER_REQUIRED")
			return nil, err
		}
		if errs.KindOf(err) == errs.KindUnknown {
			call.Fail("REPO_UPDATE_FAILED")
			return nil, errs.Wrap(err, "purchase: update item")
		}
		return nil, err
	}

	call.SetAttributes(
		attribute.String("seller", seller.String()),
		attribute.String("item.status", string(sold.Status)),
	)
	call.Annotate(
		observability.F("item_id", int64(sold.ID)),
		observability.F("seller", seller.String()),
		observability.F("price", sold.Price),
	)

	if pubErr := p.inst.Publish(ctx, p.publisher, item.NewPurchasedEvent(seller, sold)); pubErr != nil {
		call.Annotate(observability.F("event_publish_error", pubErr.Error()))
	}

	return &PurchaseResult{
		ItemID: sold.ID,
		Seller: seller,
		Buyer:  sold.Owner,
		Price:  sold.Price,
	}, nil
}
