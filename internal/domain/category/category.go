package category

import (
	"context"
	"time"
)

// ID has its own counter space, independent of item IDs.
type ID int64

type Category struct {
	ID        ID
	Name      string
	CreatedAt time.Time
}

func New(id ID, name string) *Category {
	return &Category{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// AddedEvent is emitted when a category is registered.
type AddedEvent struct {
	CategoryID ID
	Name       string
	OccurredAt time.Time
}

func (AddedEvent) EventName() string { return "category.added" }

func NewAddedEvent(c *Category) AddedEvent {
	return AddedEvent{
		CategoryID: c.ID,
		Name:       c.Name,
		OccurredAt: time.Now().UTC(),
	}
}

type Repository interface {
	Insert(ctx context.Context, c *Category) (ID, error)
	Get(ctx context.Context, id ID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}
