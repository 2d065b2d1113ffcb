package bootstrap

import (
	dompayment "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	infrapayment "github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/config"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentProvider,
	),
)

// NewPaymentProvider picks the transfer primitive buyers pay with.
func NewPaymentProvider(cfg config.Config, wallets dompayment.WalletBook, logger observability.Logger) dompayment.Provider {
	if cfg.Payment.Mode == config.PaymentModeSimulated {
		logger.Warn("payment_simulated", observability.F("success_rate", cfg.Payment.SuccessRate))
		return infrapayment.NewSimulator(cfg.Payment.SuccessRate)
	}
	return infrapayment.NewWalletProvider(wallets, logger)
}
