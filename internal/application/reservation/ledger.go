package reservation

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/reservation"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/clock"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

const (
	reservationService = "reservation-ledger"
	useCaseReserve     = "reservation.reserve"
	useCaseGet         = "reservation.get"
)

type ItemReader interface {
	Get(ctx context.Context, id item.ID) (*item.Item, error)
}

// Ledger records time-boxed holds. Any caller may reserve any existing item,
// listed or sold, and a new hold replaces the previous one.
type Ledger struct {
	items        ItemReader
	reservations domain.Repository
	publisher    domoutbox.Publisher
	clock        clock.Clock
	inst         *application.Instrumentation
}

func NewLedger(
	items ItemReader,
	reservations domain.Repository,
	publisher domoutbox.Publisher,
	clk clock.Clock,
	tel observability.Observability,
) *Ledger {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Ledger{
		items:        items,
		reservations: reservations,
		publisher:    publisher,
		clock:        clk,
		inst:         application.NewInstrumentation(reservationService, tel),
	}
}

type ReserveInput struct {
	ItemID   item.ID
	Reserver identity.ID
	TTL      time.Duration
}

func (l *Ledger) Reserve(ctx context.Context, in ReserveInput) (err error) {
	ctx, call := l.inst.Begin(ctx, useCaseReserve, "Reserve",
		attribute.Int64("item.id", int64(in.ItemID)),
		attribute.String("reserver", in.Reserver.String()),
		attribute.Int64("reservation.ttl_seconds", int64(in.TTL/time.Second)),
	)
	defer func() { call.End(err) }()

	if _, err := l.items.Get(ctx, in.ItemID); err != nil {
		return err
	}

	res := domain.New(in.ItemID, in.Reserver, in.TTL, l.clock.Now())
	if err := l.reservations.Put(ctx, res); err != nil {
		call.Fail("REPO_PUT_FAILED")
		return errs.Wrap(err, "reservation: put")
	}

	if pubErr := l.inst.Publish(ctx, l.publisher, domain.NewReservedEvent(res)); pubErr != nil {
		call.Annotate(observability.F("event_publish_error", pubErr.Error()))
	}
	return nil
}

// Get returns the last hold recorded for the item, expired or not.
func (l *Ledger) Get(ctx context.Context, itemID item.ID) (_ *domain.Reservation, found bool, err error) {
	ctx, call := l.inst.Begin(ctx, useCaseGet, "GetReservation",
		attribute.Int64("item.id", int64(itemID)),
	)
	defer func() { call.End(err) }()

	res, err := l.reservations.Get(ctx, itemID)
	switch {
	case err == nil:
		return res, true, nil
	case errs.Is(err, errs.ErrNotFound):
		return nil, false, nil
	default:
		return nil, false, errs.Wrap(err, "reservation: get")
	}
}
