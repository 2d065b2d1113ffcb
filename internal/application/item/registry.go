package item

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

const (
	itemService    = "item-registry"
	useCaseList    = "item.list"
	useCaseGetItem = "item.get"
)

// Registry creates items and serves lookups.
type Registry struct {
	items     domain.Repository
	publisher domoutbox.Publisher
	inst      *application.Instrumentation
	strict    bool
}

type Option func(*Registry)

// WithStrictListing rejects non-positive prices and blank titles.
func WithStrictListing(strict bool) Option {
	return func(r *Registry) { r.strict = strict }
}

func NewRegistry(
	items domain.Repository,
	publisher domoutbox.Publisher,
	tel observability.Observability,
	opts ...Option,
) *Registry {
	r := &Registry{
		items:     items,
		publisher: publisher,
		inst:      application.NewInstrumentation(itemService, tel),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type ListInput struct {
	Owner identity.ID
	Price int64
	Title string
}

// List stores a new listed item owned by the caller and returns its ID.
func (r *Registry) List(ctx context.Context, in ListInput) (_ domain.ID, err error) {
	ctx, call := r.inst.Begin(ctx, useCaseList, "ListItem",
		attribute.String("item.owner", in.Owner.String()),
		attribute.Int64("item.price", in.Price),
	)
	defer func() { call.End(err) }()

	if r.strict {
		if err := domain.Validate(in.Price, in.Title); err != nil {
			return 0, err
		}
	}

	entity := domain.New(0, in.Owner, in.Price, in.Title)
	id, err := r.items.Insert(ctx, entity)
	if err != nil {
		call.Fail("REPO_INSERT_FAILED")
		return 0, errs.Wrap(err, "item: insert")
	}
	entity.ID = id

	call.SetAttributes(attribute.Int64("item.id", int64(id)))
	call.Event("item.listed")

	if pubErr := r.inst.Publish(ctx, r.publisher, domain.NewListedEvent(entity)); pubErr != nil {
		call.Annotate(observability.F("event_publish_error", pubErr.Error()))
	}
	return id, nil
}

// Get returns a snapshot of the item. An unknown id is reported through
// found == false, not through err.
func (r *Registry) Get(ctx context.Context, id domain.ID) (_ *domain.Item, found bool, err error) {
	ctx, call := r.inst.Begin(ctx, useCaseGetItem, "GetItem",
		attribute.Int64("item.id", int64(id)),
	)
	defer func() { call.End(err) }()

	it, err := r.items.Get(ctx, id)
	switch {
	case err == nil:
		return it, true, nil
	case errs.Is(err, errs.ErrNotFound):
		call.SetStatus("NOT_FOUND")
		return nil, false, nil
	default:
		call.Fail("REPO_GET_FAILED")
		return nil, false, errs.Wrap(err, "item: get")
	}
}
