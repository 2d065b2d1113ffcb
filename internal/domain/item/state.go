package item

import (
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/errs"
)

// ListingState implements the state pattern for the listing lifecycle.
// listed -> sold is the only transition; sold is terminal.
type ListingState interface {
	Status() Status
	OnPurchase(i *Item, buyer identity.ID) (ListingState, error)
}

type listedState struct{}

func (listedState) Status() Status { return StatusListed }

func (listedState) OnPurchase(i *Item, buyer identity.ID) (ListingState, error) {
	i.Owner = buyer
	return soldState{}, nil
}

type soldState struct{}

func (soldState) Status() Status { return StatusSold }

// A sold item is reported as not found: buyers cannot tell it apart from an
// unknown ID without a lookup.
func (soldState) OnPurchase(i *Item, _ identity.ID) (ListingState, error) {
	return nil, errs.Newf(errs.KindNotFound, "item: %d is not listed", i.ID)
}

func stateOf(s Status) ListingState {
	if s == StatusListed {
		return listedState{}
	}
	return soldState{}
}
