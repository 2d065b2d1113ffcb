package payment

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

var (
	ErrInsufficientFunds = errs.New("payment: insufficient funds")
	ErrInvalidAmount     = errs.New("payment: amount must be greater than zero")
)

// WalletBook holds balances for the host ledger's wallet-backed primitive.
type WalletBook interface {
	Deposit(ctx context.Context, owner identity.ID, amount int64) (int64, error)
	Balance(ctx context.Context, owner identity.ID) (int64, error)
	// Move debits from and credits to in one step, or does nothing.
	Move(ctx context.Context, from, to identity.ID, amount int64) error
}
