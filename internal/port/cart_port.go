package port

import (
	"github.com/nikolayk812/storefront/internal/domain"
)

type Catalog interface {
	Items() []domain.Item
	Lookup(id string) (domain.Item, bool)
	Contains(item domain.Item) bool
}

// CheckoutCart is the part of the cart the checkout client drives.
type CheckoutCart interface {
	StartCheckout() (domain.CheckoutTicket, error)
	FinishCheckout(ticket domain.CheckoutTicket, err error) bool
	State() domain.CheckoutState
}
