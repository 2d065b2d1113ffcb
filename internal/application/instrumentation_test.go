package application_test

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	infraobs "github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type noted struct{}

func (noted) EventName() string { return "test.noted" }

func newInstrumentation(t *testing.T) (*application.Instrumentation, *prometheus.Registry, *observer.ObservedLogs) {
	t.Helper()
	reg := prometheus.NewRegistry()
	core, logs := observer.New(zap.DebugLevel)
	tel := infraobs.NewWithRegistry(
		observability.NopTracer(),
		zaplogger.New(zap.New(core)),
		prometrics.New(reg, "", ""),
	)
	return application.NewInstrumentation("test-service", tel), reg, logs
}

func TestCallEndRecordsSuccess(t *testing.T) {
	inst, reg, logs := newInstrumentation(t)

	_, call := inst.Begin(context.Background(), "thing.do", "DoThing")
	call.Annotate(observability.F("thing_id", 7))
	call.End(nil)

	require.Equal(t, 1, logs.FilterMessage("use_case_done").Len())
	fields := logs.FilterMessage("use_case_done").All()[0].ContextMap()
	assert.Equal(t, "success", fields["outcome"])
	assert.Equal(t, "OK", fields["status"])
	assert.Equal(t, "thing.do", fields["use_case"])
	assert.Equal(t, "test-service", fields["service"])
	assert.EqualValues(t, 7, fields["thing_id"])

	n, err := testutil.GatherAndCount(reg, "usecase_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCallEndClassifiesErrors(t *testing.T) {
	inst, _, logs := newInstrumentation(t)

	_, call := inst.Begin(context.Background(), "thing.do", "DoThing")
	call.End(errs.Newf(errs.KindNotOwner, "nope"))

	fields := logs.FilterMessage("use_case_done").All()[0].ContextMap()
	assert.Equal(t, "error", fields["outcome"])
	assert.Equal(t, "NOT_OWNER", fields["status"])
	assert.Equal(t, "not_owner", fields["error_kind"])
}

func TestExplicitFailWins(t *testing.T) {
	inst, _, logs := newInstrumentation(t)

	_, call := inst.Begin(context.Background(), "thing.do", "DoThing")
	call.Fail("REPO_DOWN")
	call.End(errs.New("disk gone"))

	fields := logs.FilterMessage("use_case_done").All()[0].ContextMap()
	assert.Equal(t, "REPO_DOWN", fields["status"])
	assert.Equal(t, "unknown", fields["error_kind"])
}

func TestPublish(t *testing.T) {
	inst, reg, _ := newInstrumentation(t)
	ctx := context.Background()

	assert.NoError(t, inst.Publish(ctx, nil, noted{}))

	var got []string
	ok := domoutbox.PublisherFunc(func(_ context.Context, e domoutbox.Event) error {
		got = append(got, e.EventName())
		return nil
	})
	require.NoError(t, inst.Publish(ctx, ok, noted{}))
	assert.Equal(t, []string{"test.noted"}, got)

	failing := domoutbox.PublisherFunc(func(context.Context, domoutbox.Event) error { return errs.New("closed") })
	assert.Error(t, inst.Publish(ctx, failing, noted{}))

	n, err := testutil.GatherAndCount(reg, "external_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per outcome")
}
