package domain

// CartLine groups the entries of one item id.
type CartLine struct {
	Item          Item
	Quantity      int
	SubtotalCents int64
}

func (l CartLine) Subtotal() Money {
	return MoneyFromCents(l.SubtotalCents)
}

// CartView is derived from the cart entries and never stored.
type CartView struct {
	Lines      []CartLine
	Quantities map[string]int
	TotalCents int64
}

// NewCartView folds entries into per-id quantities and a total.
// Lines keep the order in which each id was first added.
func NewCartView(entries []Item) CartView {
	view := CartView{
		Quantities: make(map[string]int, len(entries)),
	}

	index := make(map[string]int, len(entries))
	for _, entry := range entries {
		view.Quantities[entry.ID]++
		view.TotalCents += entry.PriceCents

		i, ok := index[entry.ID]
		if !ok {
			index[entry.ID] = len(view.Lines)
			view.Lines = append(view.Lines, CartLine{Item: entry})
			i = len(view.Lines) - 1
		}
		view.Lines[i].Quantity++
		view.Lines[i].SubtotalCents += entry.PriceCents
	}

	return view
}

func (v CartView) Total() Money {
	return MoneyFromCents(v.TotalCents)
}

func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}
