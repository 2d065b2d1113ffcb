package main

import (
	"github.com/Zhima-Mochi/minishop-marketplace/internal/bootstrap"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		bootstrap.ConfigModule,
		bootstrap.Module,
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	).Run()
}
