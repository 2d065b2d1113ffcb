package httppresentation

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	appcategory "github.com/Zhima-Mochi/minishop-marketplace/internal/application/category"
	appdiscount "github.com/Zhima-Mochi/minishop-marketplace/internal/application/discount"
	appitem "github.com/Zhima-Mochi/minishop-marketplace/internal/application/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/application/purchase"
	appreservation "github.com/Zhima-Mochi/minishop-marketplace/internal/application/reservation"
	appsales "github.com/Zhima-Mochi/minishop-marketplace/internal/application/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability/logctx"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	headerCallerID       = "X-Caller-ID"
)

// Services groups the ledger operations exposed over HTTP.
type Services struct {
	Items        *appitem.Registry
	Categories   *appcategory.Registry
	Discounts    *appdiscount.Ledger
	Reservations *appreservation.Ledger
	Purchases    *purchase.Processor
	Sales        *appsales.Projection
	Wallets      payment.WalletBook
	Payments     payment.Provider
}

type Handler struct {
	svc     Services
	metrics http.Handler
	log     observability.Logger
	tel     observability.Observability
}

type Option func(*Handler)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(handler *Handler) { handler.metrics = h }
}

func NewHandler(svc Services, logger observability.Logger, tel observability.Observability, opts ...Option) *Handler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	h := &Handler{
		svc: svc,
		log: logger.With(observability.F("component", componentHTTPHandler)),
		tel: observability.Or(tel),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	h.muxHandle(mux, http.MethodPost, "/items", h.handleListItem)
	h.muxHandle(mux, http.MethodGet, "/items/{id}", h.handleGetItem)
	h.muxHandle(mux, http.MethodPost, "/items/{id}/purchase", h.handlePurchase)
	h.muxHandle(mux, http.MethodPut, "/items/{id}/discount", h.handleSetDiscount)
	h.muxHandle(mux, http.MethodPost, "/items/{id}/reservation", h.handleReserve)
	h.muxHandle(mux, http.MethodPost, "/categories", h.handleAddCategory)
	h.muxHandle(mux, http.MethodGet, "/categories", h.handleListCategories)
	h.muxHandle(mux, http.MethodGet, "/categories/{id}", h.handleGetCategory)
	h.muxHandle(mux, http.MethodPost, "/wallets/{owner}/deposit", h.handleDeposit)
	h.muxHandle(mux, http.MethodGet, "/wallets/{owner}", h.handleBalance)
	h.muxHandle(mux, http.MethodGet, "/sellers/{owner}/sales", h.handleSales)
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	pattern := method + " " + route
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx := contextWithRoute(r.Context(), pattern)
		r = r.WithContext(ctx)

		// Trace → request logger + metrics → access log → handler
		wrapped := h.withTrace(
			ObservabilityMiddleware(
				logctx.FromOr(ctx, h.log),
				func(r *http.Request) string { return r.Header.Get(headerRequestID) },
				func(r *http.Request) string { return r.Header.Get(headerCallerID) },
				h.tel,
			)(
				h.withAccessLog(handler),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("minishop.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		ctxWithSpan, span := tracer.Start(parentCtx,
			route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindNotOwner:
		status = http.StatusForbidden
	case errs.KindInvalidDiscount, errs.KindInvalidListing:
		status = http.StatusUnprocessableEntity
	case errs.KindPaymentFailed:
		status = http.StatusPaymentRequired
	case errs.KindUnknown:
		if errs.Is(err, payment.ErrInvalidAmount) {
			status = http.StatusBadRequest
		}
	}

	resp := errorResponse{Error: err.Error()}
	if kind != errs.KindUnknown {
		resp.Code = kind.String()
	}
	if status == http.StatusInternalServerError {
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}

var (
	errCallerRequired = errs.New("X-Caller-ID header is required")
	errInvalidID      = errs.New("path id must be a positive integer")
	errInvalidTTL     = errs.New("ttl_seconds must be between 0 and 9223372036")
)

func callerFrom(r *http.Request) (identity.ID, bool) {
	caller := identity.ID(r.Header.Get(headerCallerID))
	return caller, !caller.IsZero()
}

func pathID(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
