package item_test

import (
	"context"
	"sync"
	"testing"

	appitem "github.com/Zhima-Mochi/minishop-marketplace/internal/application/item"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []domoutbox.Event
}

func (r *recorder) Publish(_ context.Context, e domoutbox.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func TestListAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	reg := appitem.NewRegistry(memory.NewItemRepository(), nil, observability.Nop())

	for want := domain.ID(1); want <= 3; want++ {
		got, err := reg.List(ctx, appitem.ListInput{Owner: "alice", Price: 100, Title: "Lamp"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestListThenGet(t *testing.T) {
	ctx := context.Background()
	reg := appitem.NewRegistry(memory.NewItemRepository(), nil, observability.Nop())

	id, err := reg.List(ctx, appitem.ListInput{Owner: "alice", Price: 100, Title: "Lamp"})
	require.NoError(t, err)

	it, found, err := reg.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "alice", it.Owner.String())
	assert.Equal(t, int64(100), it.Price)
	assert.Equal(t, "Lamp", it.Title)
	assert.True(t, it.IsListed())
}

func TestGetUnknownIsAbsent(t *testing.T) {
	reg := appitem.NewRegistry(memory.NewItemRepository(), nil, observability.Nop())

	it, found, err := reg.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, it)
}

func TestListAcceptsAnyPriceAndTitleByDefault(t *testing.T) {
	ctx := context.Background()
	reg := appitem.NewRegistry(memory.NewItemRepository(), nil, observability.Nop())

	_, err := reg.List(ctx, appitem.ListInput{Owner: "alice", Price: 0, Title: ""})
	assert.NoError(t, err)
	_, err = reg.List(ctx, appitem.ListInput{Owner: "alice", Price: -5, Title: "Odd"})
	assert.NoError(t, err)
}

func TestStrictListingRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	reg := appitem.NewRegistry(repo, nil, observability.Nop(), appitem.WithStrictListing(true))

	_, err := reg.List(ctx, appitem.ListInput{Owner: "alice", Price: 0, Title: "Lamp"})
	assert.Equal(t, errs.KindInvalidListing, errs.KindOf(err))

	_, err = reg.List(ctx, appitem.ListInput{Owner: "alice", Price: 10, Title: "  "})
	assert.Equal(t, errs.KindInvalidListing, errs.KindOf(err))
	assert.Equal(t, 0, repo.Len())

	id, err := reg.List(ctx, appitem.ListInput{Owner: "alice", Price: 10, Title: "Lamp"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(1), id)
}

func TestListPublishesListedEvent(t *testing.T) {
	rec := &recorder{}
	reg := appitem.NewRegistry(memory.NewItemRepository(), rec, observability.Nop())

	id, err := reg.List(context.Background(), appitem.ListInput{Owner: "alice", Price: 100, Title: "Lamp"})
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	evt, ok := rec.events[0].(domain.ListedEvent)
	require.True(t, ok)
	assert.Equal(t, id, evt.ItemID)
	assert.Equal(t, "alice", evt.Owner.String())
	assert.Equal(t, "item.listed", evt.EventName())
}

func TestListSurvivesPublishFailure(t *testing.T) {
	failing := domoutbox.PublisherFunc(func(context.Context, domoutbox.Event) error {
		return errs.New("bus closed")
	})
	reg := appitem.NewRegistry(memory.NewItemRepository(), failing, observability.Nop())

	id, err := reg.List(context.Background(), appitem.ListInput{Owner: "alice", Price: 1, Title: "Pin"})
	require.NoError(t, err)

	_, found, err := reg.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, found)
}
