package bootstrap

import (
	"context"

	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/config"

	"go.uber.org/fx"
)

var EventModule = fx.Module("event",
	fx.Provide(
		NewBus,
		func(b *outbox.Bus) domoutbox.Publisher { return b },
		func(b *outbox.Bus) domoutbox.Subscriber { return b },
	),
)

func NewBus(lc fx.Lifecycle, cfg config.Config, logger observability.Logger) *outbox.Bus {
	bus := outbox.NewBus(logger, outbox.Options{
		QueueSize:      cfg.Bus.QueueSize,
		Concurrency:    cfg.Bus.Concurrency,
		HandlerTimeout: cfg.Bus.HandlerTimeout,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			bus.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return bus.Stop(ctx)
		},
	})
	return bus
}
