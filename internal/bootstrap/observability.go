package bootstrap

import (
	"context"

	infraobs "github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/config"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		NewZapLogger,
		NewLogger,
		NewPrometheusRegistry,
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		NewTracer,
		NewObservability,
	),
)

func NewZapLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.NewLogger(logging.Options{
		Service: cfg.Service.Name,
		Env:     cfg.Service.Env,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

// NewLogger exposes the system logger through the vendor-neutral port.
func NewLogger(z *zap.Logger) observability.Logger {
	return zaplogger.New(logging.WithTrace(z, logging.SystemTraceID, logging.SystemSpanID))
}

func NewPrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewTracer(cfg config.Config) observability.Tracer {
	return oteltrace.New(cfg.Service.Name)
}

func NewObservability(tracer observability.Tracer, logger observability.Logger, reg *prometheus.Registry) observability.Observability {
	return infraobs.NewWithRegistry(tracer, logger, prometrics.New(reg, "", ""))
}
