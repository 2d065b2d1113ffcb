package category

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/application"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/category"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

const (
	categoryService = "category-registry"
	useCaseAdd      = "category.add"
	useCaseGet      = "category.get"
	useCaseList     = "category.list"
)

// Registry records categories. Categories are not linked to items.
type Registry struct {
	categories domain.Repository
	publisher  domoutbox.Publisher
	inst       *application.Instrumentation
}

func NewRegistry(categories domain.Repository, publisher domoutbox.Publisher, tel observability.Observability) *Registry {
	return &Registry{
		categories: categories,
		publisher:  publisher,
		inst:       application.NewInstrumentation(categoryService, tel),
	}
}

func (r *Registry) Add(ctx context.Context, name string) (_ domain.ID, err error) {
	ctx, call := r.inst.Begin(ctx, useCaseAdd, "AddCategory",
		attribute.String("category.name", name),
	)
	defer func() { call.End(err) }()

	entity := domain.New(0, name)
	id, err := r.categories.Insert(ctx, entity)
	if err != nil {
		call.Fail("REPO_INSERT_FAILED")
		return 0, errs.Wrap(err, "category: insert")
	}
	entity.ID = id
	call.SetAttributes(attribute.Int64("category.id", int64(id)))

	if pubErr := r.inst.Publish(ctx, r.publisher, domain.NewAddedEvent(entity)); pubErr != nil {
		call.Annotate(observability.F("event_publish_error", pubErr.Error()))
	}
	return id, nil
}

// Get returns the category or an error of kind not_found.
func (r *Registry) Get(ctx context.Context, id domain.ID) (_ *domain.Category, err error) {
	ctx, call := r.inst.Begin(ctx, useCaseGet, "GetCategory",
		attribute.Int64("category.id", int64(id)),
	)
	defer func() { call.End(err) }()

	return r.categories.Get(ctx, id)
}

func (r *Registry) List(ctx context.Context) (_ []*domain.Category, err error) {
	ctx, call := r.inst.Begin(ctx, useCaseList, "ListCategories")
	defer func() { call.End(err) }()

	out, err := r.categories.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "category: list")
	}
	call.Annotate(observability.F("count", len(out)))
	return out, nil
}
