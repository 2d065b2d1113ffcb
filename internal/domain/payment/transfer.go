package payment

//go:generate mockgen -source=transfer.go -destination=paymentmock/transferor.go -package=paymentmock

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
)

// Transferor is the payment capability handed to a purchase. It moves amount
// from the buyer it was built for to recipient and reports whether the
// transfer happened. The result is authoritative: callers never re-check it.
type Transferor interface {
	Transfer(ctx context.Context, amount int64, recipient identity.ID) bool
}

// TransferFunc adapts a plain function to Transferor.
type TransferFunc func(ctx context.Context, amount int64, recipient identity.ID) bool

func (f TransferFunc) Transfer(ctx context.Context, amount int64, recipient identity.ID) bool {
	return f(ctx, amount, recipient)
}

// Always returns a Transferor that reports ok without moving anything.
func Always(ok bool) Transferor {
	return TransferFunc(func(context.Context, int64, identity.ID) bool { return ok })
}

// Provider builds the Transferor a given buyer pays with.
type Provider interface {
	For(buyer identity.ID) Transferor
}
