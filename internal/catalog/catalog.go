package catalog

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
)

type Catalog struct {
	items []domain.Item
	byID  map[string]domain.Item
}

func New(items ...domain.Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]domain.Item, 0, len(items)),
		byID:  make(map[string]domain.Item, len(items)),
	}

	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item id is empty")
		}
		if item.PriceCents < 0 {
			return nil, fmt.Errorf("item[%s] price is negative: %d", item.ID, item.PriceCents)
		}
		if _, ok := c.byID[item.ID]; ok {
			return nil, fmt.Errorf("item[%s] is duplicated", item.ID)
		}

		c.items = append(c.items, item)
		c.byID[item.ID] = item
	}

	return c, nil
}

// Default returns the hardware store catalog.
func Default() *Catalog {
	c, err := New(
		domain.Item{ID: "wrench", Name: "Wrench", PriceCents: 500, Image: "wrench.png"},
		domain.Item{ID: "nails", Name: "Nails", PriceCents: 25, Image: "nails.png"},
		domain.Item{ID: "hammer", Name: "Hammer", PriceCents: 1000, Image: "hammer.png"},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Items() []domain.Item {
	return slices.Clone(c.items)
}

func (c *Catalog) Lookup(id string) (domain.Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Contains reports whether item is a catalog record, not just a known id.
func (c *Catalog) Contains(item domain.Item) bool {
	known, ok := c.byID[item.ID]
	return ok && known == item
}
