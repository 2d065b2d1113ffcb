package sales_test

import (
	"context"
	"testing"
	"time"

	appsales "github.com/Zhima-Mochi/minishop-marketplace/internal/application/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otherEvent struct{}

func (otherEvent) EventName() string { return "item.purchased" }

func TestProjectionRecordsPurchases(t *testing.T) {
	ctx := context.Background()
	bus := outbox.NewBus(observability.NopLogger(), outbox.Options{})
	proj := appsales.NewProjection(memory.NewSalesRepository(), bus, observability.Nop())
	proj.Start()
	bus.Start(ctx)

	soldAt := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	for _, evt := range []item.PurchasedEvent{
		{ItemID: 1, Seller: "alice", Buyer: "bob", Price: 100, Title: "Lamp", OccurredAt: soldAt},
		{ItemID: 2, Seller: "alice", Buyer: "carol", Price: 40, Title: "Mug", OccurredAt: soldAt},
		{ItemID: 3, Seller: "dave", Buyer: "bob", Price: 7, Title: "Pin", OccurredAt: soldAt},
	} {
		require.NoError(t, bus.Publish(ctx, evt))
	}
	require.NoError(t, bus.Stop(ctx))

	got, err := proj.Summary(ctx, "alice")
	require.NoError(t, err)

	want := sales.Summary{
		Seller:  "alice",
		Count:   2,
		Revenue: 140,
		Receipts: []sales.Receipt{
			{ItemID: 1, Seller: "alice", Buyer: "bob", Title: "Lamp", Price: 100, SoldAt: soldAt},
			{ItemID: 2, Seller: "alice", Buyer: "carol", Title: "Mug", Price: 40, SoldAt: soldAt},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectionIgnoresForeignPayloads(t *testing.T) {
	ctx := context.Background()
	proj := appsales.NewProjection(memory.NewSalesRepository(), nil, observability.Nop())

	var h domoutbox.Handler = proj.HandlePurchased
	require.NoError(t, h(ctx, otherEvent{}))

	got, err := proj.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, got.Count)
	assert.Empty(t, got.Receipts)
}
