package discount_test

import (
	"context"
	"sync"
	"testing"
	"time"

	appdiscount "github.com/Zhima-Mochi/minishop-marketplace/internal/application/discount"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/application/purchase"
	domain "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/discount"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerSuite struct {
	suite.Suite
	ctx    context.Context
	items  *memory.ItemRepository
	ledger *appdiscount.Ledger
	events []domoutbox.Event
	itemID item.ID
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.items = memory.NewItemRepository()
	s.events = nil
	pub := domoutbox.PublisherFunc(func(_ context.Context, e domoutbox.Event) error {
		s.events = append(s.events, e)
		return nil
	})
	s.ledger = appdiscount.NewLedger(s.items, memory.NewDiscountRepository(), pub, observability.Nop())

	id, err := s.items.Insert(s.ctx, item.New(0, "alice", 200, "Lamp"))
	s.Require().NoError(err)
	s.itemID = id
}

func (s *LedgerSuite) TestOwnerSetsDiscount() {
	err := s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 20, Caller: "alice"})
	s.Require().NoError(err)

	d, found, err := s.ledger.Get(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(20, d.Percent)
	s.Equal("alice", d.SetBy.String())

	s.Require().Len(s.events, 1)
	s.Equal("item.discount_set", s.events[0].EventName())
}

func (s *LedgerSuite) TestBoundaryPercents() {
	for _, pct := range []int{0, 100} {
		s.NoError(s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: pct, Caller: "alice"}))
	}
	err := s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 101, Caller: "alice"})
	s.Equal(errs.KindInvalidDiscount, errs.KindOf(err))

	err = s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: -1, Caller: "alice"})
	s.Equal(errs.KindInvalidDiscount, errs.KindOf(err))

	d, _, err := s.ledger.Get(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.Equal(100, d.Percent, "rejected writes leave the last valid discount")
}

func (s *LedgerSuite) TestOverwrite() {
	s.Require().NoError(s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 10, Caller: "alice"}))
	s.Require().NoError(s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 30, Caller: "alice"}))

	d, _, err := s.ledger.Get(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.Equal(30, d.Percent)
}

func (s *LedgerSuite) TestCheckOrder() {
	// Missing item wins over every other failure.
	err := s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: 99, Percent: 500, Caller: "mallory"})
	s.Equal(errs.KindNotFound, errs.KindOf(err))

	// Ownership is checked before the percent range.
	err = s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 500, Caller: "mallory"})
	s.Equal(errs.KindNotOwner, errs.KindOf(err))

	_, found, err := s.ledger.Get(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.False(found)
	s.Empty(s.events)
}

func (s *LedgerSuite) TestOwnershipFollowsTransfer() {
	_, err := s.items.Update(s.ctx, s.itemID, func(it *item.Item) error { return it.Sell("bob") })
	s.Require().NoError(err)

	err = s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 10, Caller: "alice"})
	s.Equal(errs.KindNotOwner, errs.KindOf(err))

	s.NoError(s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 10, Caller: "bob"}))
}

func (s *LedgerSuite) TestQuote() {
	price, err := s.ledger.Quote(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.Equal(int64(200), price)

	s.Require().NoError(s.ledger.Set(s.ctx, appdiscount.SetInput{ItemID: s.itemID, Percent: 25, Caller: "alice"}))
	price, err = s.ledger.Quote(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.Equal(int64(150), price)

	_, err = s.ledger.Quote(s.ctx, 42)
	s.Equal(errs.KindNotFound, errs.KindOf(err))
}

func (s *LedgerSuite) TestGetWithoutDiscount() {
	d, found, err := s.ledger.Get(s.ctx, s.itemID)
	s.Require().NoError(err)
	s.False(found)
	s.Equal((*domain.Discount)(nil), d)
}

// ownerAtWrite records who owned the item at the moment each discount was
// stored.
type ownerAtWrite struct {
	domain.Repository
	items  *memory.ItemRepository
	onPut  func()
	mu     sync.Mutex
	owners []identity.ID
}

func (r *ownerAtWrite) Put(ctx context.Context, d *domain.Discount) error {
	if r.onPut != nil {
		hook := r.onPut
		r.onPut = nil
		hook()
	}
	it, err := r.items.Get(ctx, d.ItemID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.owners = append(r.owners, it.Owner)
	r.mu.Unlock()
	return r.Repository.Put(ctx, d)
}

func TestPurchaseWaitsForDiscountWrite(t *testing.T) {
	ctx := context.Background()
	items := memory.NewItemRepository()
	id, err := items.Insert(ctx, item.New(0, "alice", 100, "Lamp"))
	require.NoError(t, err)

	proc := purchase.NewProcessor(items, nil, observability.Nop())
	purchased := make(chan error, 1)

	discounts := &ownerAtWrite{Repository: memory.NewDiscountRepository(), items: items}
	discounts.onPut = func() {
		go func() {
			purchased <- proc.Purchase(ctx, purchase.PurchaseInput{ItemID: id, Buyer: "bob", Transfer: payment.Always(true)})
		}()
		select {
		case err := <-purchased:
			t.Errorf("purchase committed while the discount was being written: %v", err)
			purchased <- err
		case <-time.After(50 * time.Millisecond):
		}
	}
	ledger := appdiscount.NewLedger(items, discounts, nil, observability.Nop())

	require.NoError(t, ledger.Set(ctx, appdiscount.SetInput{ItemID: id, Percent: 90, Caller: "alice"}))
	require.NoError(t, <-purchased)

	assert.Equal(t, []identity.ID{"alice"}, discounts.owners)
	it, err := items.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, identity.ID("bob"), it.Owner)

	err = ledger.Set(ctx, appdiscount.SetInput{ItemID: id, Percent: 10, Caller: "alice"})
	assert.Equal(t, errs.KindNotOwner, errs.KindOf(err))
}

func TestSetRacingPurchaseOnlyStoresOwnerDiscounts(t *testing.T) {
	ctx := context.Background()

	for round := range 200 {
		items := memory.NewItemRepository()
		id, err := items.Insert(ctx, item.New(0, "alice", 100, "Lamp"))
		require.NoError(t, err)

		discounts := &ownerAtWrite{Repository: memory.NewDiscountRepository(), items: items}
		ledger := appdiscount.NewLedger(items, discounts, nil, observability.Nop())
		proc := purchase.NewProcessor(items, nil, observability.Nop())

		var (
			wg          sync.WaitGroup
			start       = make(chan struct{})
			setErr      error
			purchaseErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			setErr = ledger.Set(ctx, appdiscount.SetInput{ItemID: id, Percent: 50, Caller: "alice"})
		}()
		go func() {
			defer wg.Done()
			<-start
			purchaseErr = proc.Purchase(ctx, purchase.PurchaseInput{ItemID: id, Buyer: "bob", Transfer: payment.Always(true)})
		}()
		close(start)
		wg.Wait()

		require.NoError(t, purchaseErr, "round %d", round)

		d, found, err := ledger.Get(ctx, id)
		require.NoError(t, err)
		if setErr != nil {
			assert.Equal(t, errs.KindNotOwner, errs.KindOf(setErr), "round %d", round)
			assert.False(t, found, "round %d", round)
			assert.Empty(t, discounts.owners, "round %d", round)
			continue
		}
		require.True(t, found, "round %d", round)
		require.Len(t, discounts.owners, 1, "round %d", round)
		assert.Equal(t, discounts.owners[0], d.SetBy, "round %d", round)
	}
}
