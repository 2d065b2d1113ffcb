package item

import "context"

type Repository interface {
	// Insert assigns the next ID to it and stores it.
	Insert(ctx context.Context, it *Item) (ID, error)
	// Get returns a copy of the item or an error of kind not_found.
	Get(ctx context.Context, id ID) (*Item, error)
	// Update serializes read-modify-write on a single item. fn receives a
	// private copy; the copy is committed only if fn returns nil.
	Update(ctx context.Context, id ID, fn func(it *Item) error) (*Item, error)
	// View runs fn on a copy of the item under the same per-item lock as
	// Update. Nothing is committed; fn may write to other stores knowing no
	// Update on this item can interleave.
	View(ctx context.Context, id ID, fn func(it *Item) error) error
}
