package memory

import (
	"context"
	"sync"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

// WalletBook is an in-memory balance sheet. Unknown owners hold zero.
type WalletBook struct {
	mu       sync.Mutex
	balances map[identity.ID]int64
}

func NewWalletBook() *WalletBook {
	return &WalletBook{
		balances: make(map[identity.ID]int64),
	}
}

func (b *WalletBook) Deposit(ctx context.Context, owner identity.ID, amount int64) (int64, error) {
	_ = ctx
	if amount <= 0 {
		return 0, errs.Wrap(payment.ErrInvalidAmount, "wallet: deposit")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances[owner] += amount
	return b.balances[owner], nil
}

func (b *WalletBook) Balance(ctx context.Context, owner identity.ID) (int64, error) {
	_ = ctx

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balances[owner], nil
}

func (b *WalletBook) Move(ctx context.Context, from, to identity.ID, amount int64) error {
	_ = ctx
	if amount < 0 {
		return errs.Wrap(payment.ErrInvalidAmount, "wallet: move")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.balances[from] < amount {
		return errs.Wrapf(payment.ErrInsufficientFunds, "wallet: %s has %d, needs %d", from, b.balances[from], amount)
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
