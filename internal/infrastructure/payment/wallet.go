package payment

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	dompayment "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability/logctx"
)

// WalletTransfer pays from one wallet of the book. Any book error, including
// insufficient funds, is reported as a failed transfer.
type WalletTransfer struct {
	wallets dompayment.WalletBook
	payer   identity.ID
	log     observability.Logger
}

func NewWalletTransfer(wallets dompayment.WalletBook, payer identity.ID, log observability.Logger) *WalletTransfer {
	if log == nil {
		log = observability.NopLogger()
	}
	return &WalletTransfer{
		wallets: wallets,
		payer:   payer,
		log:     log.With(observability.F("component", "wallet_transfer")),
	}
}

func (t *WalletTransfer) Transfer(ctx context.Context, amount int64, recipient identity.ID) bool {
	if err := t.wallets.Move(ctx, t.payer, recipient, amount); err != nil {
		logctx.FromOr(ctx, t.log).Warn("wallet_transfer_declined",
			observability.F("payer", t.payer.String()),
			observability.F("recipient", recipient.String()),
			observability.F("amount", amount),
			observability.F("error", err),
		)
		return false
	}
	return true
}

// WalletProvider hands each buyer a transfer backed by their own wallet.
type WalletProvider struct {
	wallets dompayment.WalletBook
	log     observability.Logger
}

func NewWalletProvider(wallets dompayment.WalletBook, log observability.Logger) *WalletProvider {
	return &WalletProvider{wallets: wallets, log: log}
}

func (p *WalletProvider) For(buyer identity.ID) dompayment.Transferor {
	return NewWalletTransfer(p.wallets, buyer, p.log)
}
