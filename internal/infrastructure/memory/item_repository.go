package memory

import (
	"context"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

// ItemRepository keeps items in an ID-indexed map. Writers to one item are
// serialized by that item's lock; readers only take the map lock and see the
// last committed copy.
type ItemRepository struct {
	mu    sync.RWMutex
	seq   *id.Sequence
	items map[domain.ID]*itemSlot
}

type itemSlot struct {
	write     sync.Mutex
	committed *domain.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		seq:   id.NewSequence(),
		items: make(map[domain.ID]*itemSlot),
	}
}

func (r *ItemRepository) Insert(ctx context.Context, it *domain.Item) (domain.ID, error) {
	_ = ctx
	if it == nil {
		return 0, errs.New("item repository: item is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	it.ID = domain.ID(r.seq.Next())
	r.items[it.ID] = &itemSlot{committed: it.Clone()}
	return it.ID, nil
}

func (r *ItemRepository) Get(ctx context.Context, itemID domain.ID) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.items[itemID]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "item: %d not found", itemID)
	}
	return slot.committed.Clone(), nil
}

func (r *ItemRepository) Update(ctx context.Context, itemID domain.ID, fn func(it *domain.Item) error) (*domain.Item, error) {
	_ = ctx

	slot, err := r.slot(itemID)
	if err != nil {
		return nil, err
	}

	slot.write.Lock()
	defer slot.write.Unlock()

	working := r.snapshot(slot)
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = itemID

	r.mu.Lock()
	slot.committed = working.Clone()
	r.mu.Unlock()

	return working, nil
}

func (r *ItemRepository) View(ctx context.Context, itemID domain.ID, fn func(it *domain.Item) error) error {
	_ = ctx

	slot, err := r.slot(itemID)
	if err != nil {
		return err
	}

	slot.write.Lock()
	defer slot.write.Unlock()

	return fn(r.snapshot(slot))
}

func (r *ItemRepository) slot(itemID domain.ID) (*itemSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.items[itemID]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "item: %d not found", itemID)
	}
	return slot, nil
}

func (r *ItemRepository) snapshot(slot *itemSlot) *domain.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slot.committed.Clone()
}

// Len reports how many items have ever been stored.
func (r *ItemRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
