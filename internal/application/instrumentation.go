package application

import (
	"context"
	"time"

	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability/logctx"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanPrefix     = "UC."
	publishPeer    = "outbox"
	publishTimeout = 300 * time.Millisecond

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Instrumentation carries the RED metrics, tracer and base logger shared by
// the use cases of one service. Instruments are resolved once at wiring time.
type Instrumentation struct {
	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
	extCounter   observability.Counter   // external_requests_total{peer,endpoint,outcome}
	extHistogram observability.Histogram // external_request_duration_seconds{peer,endpoint}
}

func NewInstrumentation(service string, tel observability.Observability) *Instrumentation {
	tel = observability.Or(tel)
	metrics := tel.Metrics()
	return &Instrumentation{
		log:          tel.Logger().With(observability.F("service", service)),
		tracer:       tel.Tracer(),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

// Call tracks one use case execution from Begin to End.
type Call struct {
	in      *Instrumentation
	useCase string
	span    trace.Span
	ctx     context.Context
	logger  observability.Logger
	start   time.Time
	outcome string
	status  string
	fields  []observability.Field
}

// Begin opens a span named UC.<spanName> and binds a request-scoped logger.
func (in *Instrumentation) Begin(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *Call) {
	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := in.tracer.Start(ctx, spanPrefix+spanName, attrs...)
	ctx, logger := logctx.Extend(ctx, in.log, observability.F("use_case", useCase))
	return ctx, &Call{
		in:      in,
		useCase: useCase,
		span:    span,
		ctx:     ctx,
		logger:  logger,
		start:   time.Now(),
		outcome: OutcomeSuccess,
		status:  "OK",
	}
}

func (c *Call) Logger() observability.Logger { return c.logger }

// Fail marks the call as failed with a machine-readable status.
func (c *Call) Fail(status string) {
	c.outcome, c.status = OutcomeError, status
}

// SetStatus overrides the status text without changing the outcome.
func (c *Call) SetStatus(status string) {
	c.status = status
}

// Annotate adds fields to the final use_case_done line.
func (c *Call) Annotate(fields ...observability.Field) {
	c.fields = append(c.fields, fields...)
}

func (c *Call) Event(name string, attrs ...attribute.KeyValue) {
	if c.span != nil {
		c.span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

func (c *Call) SetAttributes(attrs ...attribute.KeyValue) {
	if c.span != nil {
		c.span.SetAttributes(attrs...)
	}
}

// End closes the span, records metrics and writes the use_case_done line.
func (c *Call) End(err error) {
	lat := time.Since(c.start).Seconds()
	if err != nil && c.outcome == OutcomeSuccess {
		c.Fail(statusFromError(err))
	}

	if c.span != nil {
		if err != nil {
			c.span.RecordError(err)
			c.span.SetStatus(codes.Error, c.status)
		} else {
			c.span.SetStatus(codes.Ok, c.status)
		}
		c.span.End()
	}

	c.in.reqCounter.Add(1,
		observability.L("use_case", c.useCase),
		observability.L("outcome", c.outcome),
	)
	c.in.durHistogram.Observe(lat,
		observability.L("use_case", c.useCase),
	)

	fields := []observability.Field{
		observability.F("outcome", c.outcome),
		observability.F("status", c.status),
		observability.F("latency_seconds", lat),
	}
	if sc := trace.SpanContextFromContext(c.ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	fields = append(fields, c.fields...)
	if err != nil {
		fields = append(fields,
			observability.F("error", err.Error()),
			observability.F("error_kind", errs.KindOf(err).String()),
		)
	}

	c.logger.Info("use_case_done", fields...)
}

// External times a call to a collaborator outside the core. fn returns the
// outcome label to record.
func (in *Instrumentation) External(ctx context.Context, peer, endpoint string, fn func(ctx context.Context) string) {
	start := time.Now()
	outcome := fn(ctx)
	in.extCounter.Add(1,
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
		observability.L("outcome", outcome),
	)
	in.extHistogram.Observe(time.Since(start).Seconds(),
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
	)
}

// Publish hands event to publisher with a short timeout. A nil publisher is
// a no-op. Publication is best effort: the state change has already
// committed, so callers log the error rather than fail the call.
func (in *Instrumentation) Publish(ctx context.Context, publisher domoutbox.Publisher, event domoutbox.Event) error {
	if publisher == nil || event == nil {
		return nil
	}

	var err error
	in.External(ctx, publishPeer, event.EventName(), func(ctx context.Context) string {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		err = publisher.Publish(pubCtx, event)
		switch {
		case err != nil:
			return OutcomeError
		case pubCtx.Err() != nil:
			err = pubCtx.Err()
			return "canceled"
		default:
			return OutcomeSuccess
		}
	})
	return err
}

func statusFromError(err error) string {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return "NOT_FOUND"
	case errs.KindNotOwner:
		return "NOT_OWNER"
	case errs.KindInvalidDiscount:
		return "INVALID_DISCOUNT"
	case errs.KindPaymentFailed:
		return "PAYMENT_FAILED"
	case errs.KindInvalidListing:
		return "INVALID_LISTING"
	default:
		return "INTERNAL"
	}
}
