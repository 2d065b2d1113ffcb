package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"

	appcategory "github.com/Zhima-Mochi/minishop-marketplace/internal/application/category"
	appdiscount "github.com/Zhima-Mochi/minishop-marketplace/internal/application/discount"
	appitem "github.com/Zhima-Mochi/minishop-marketplace/internal/application/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/application/purchase"
	appreservation "github.com/Zhima-Mochi/minishop-marketplace/internal/application/reservation"
	appsales "github.com/Zhima-Mochi/minishop-marketplace/internal/application/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/config"
	httppresentation "github.com/Zhima-Mochi/minishop-marketplace/internal/presentation/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var HTTPModule = fx.Module("http",
	fx.Provide(
		NewHTTPHandler,
		NewHTTPServer,
	),
	fx.Invoke(func(*http.Server) {}),
)

type HandlerParams struct {
	fx.In

	Items        *appitem.Registry
	Categories   *appcategory.Registry
	Discounts    *appdiscount.Ledger
	Reservations *appreservation.Ledger
	Purchases    *purchase.Processor
	Sales        *appsales.Projection
	Wallets      payment.WalletBook
	Payments     payment.Provider
	Gatherer     prometheus.Gatherer
	Logger       observability.Logger
	Tel          observability.Observability
}

func NewHTTPHandler(p HandlerParams) *httppresentation.Handler {
	return httppresentation.NewHandler(httppresentation.Services{
		Items:        p.Items,
		Categories:   p.Categories,
		Discounts:    p.Discounts,
		Reservations: p.Reservations,
		Purchases:    p.Purchases,
		Sales:        p.Sales,
		Wallets:      p.Wallets,
		Payments:     p.Payments,
	}, p.Logger, p.Tel,
		httppresentation.WithMetricsHandler(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})),
	)
}

func NewHTTPServer(lc fx.Lifecycle, cfg config.Config, h *httppresentation.Handler, logger observability.Logger) *http.Server {
	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: h.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			logger.Info("http_server_start", observability.F("addr", ln.Addr().String()))
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http_server_error", observability.F("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("http_server_shutdown_error", observability.F("error", err))
				return err
			}
			logger.Info("http_server_stopped")
			return nil
		},
	})
	return server
}
