package domain

// Item is a purchasable catalog record. Prices are kept in cents.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Image      string `json:"img,omitempty"`
}

func (i Item) Price() Money {
	return MoneyFromCents(i.PriceCents)
}
