package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wrench = domain.Item{ID: "wrench", Name: "Wrench", PriceCents: 500}
	nails  = domain.Item{ID: "nails", Name: "Nails", PriceCents: 25}
	hammer = domain.Item{ID: "hammer", Name: "Hammer", PriceCents: 1000}
)

func TestNewCartView(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Item
		want    domain.CartView
	}{
		{
			name:    "empty cart",
			entries: nil,
			want: domain.CartView{
				Quantities: map[string]int{},
			},
		},
		{
			name:    "wrench and nails",
			entries: []domain.Item{wrench, nails},
			want: domain.CartView{
				Lines: []domain.CartLine{
					{Item: wrench, Quantity: 1, SubtotalCents: 500},
					{Item: nails, Quantity: 1, SubtotalCents: 25},
				},
				Quantities: map[string]int{"wrench": 1, "nails": 1},
				TotalCents: 525,
			},
		},
		{
			name:    "wrench bought twice keeps first-added order",
			entries: []domain.Item{wrench, nails, wrench},
			want: domain.CartView{
				Lines: []domain.CartLine{
					{Item: wrench, Quantity: 2, SubtotalCents: 1000},
					{Item: nails, Quantity: 1, SubtotalCents: 25},
				},
				Quantities: map[string]int{"wrench": 2, "nails": 1},
				TotalCents: 1025,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NewCartView(tt.entries)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestNewCartView_RandomEntries(t *testing.T) {
	items := []domain.Item{wrench, nails, hammer}

	for range 20 {
		n := gofakeit.IntRange(0, 50)
		entries := make([]domain.Item, 0, n)

		var (
			wantTotal int64
			wantQty   = map[string]int{}
		)
		for range n {
			item := items[gofakeit.IntRange(0, len(items)-1)]
			entries = append(entries, item)
			wantTotal += item.PriceCents
			wantQty[item.ID]++
		}

		view := domain.NewCartView(entries)
		require.Equal(t, wantTotal, view.TotalCents)
		require.Empty(t, cmp.Diff(wantQty, view.Quantities))

		var sum int
		for _, qty := range view.Quantities {
			sum += qty
		}
		require.Equal(t, len(entries), sum)

		// recomputation over the same entries is identical
		require.Empty(t, cmp.Diff(view, domain.NewCartView(entries)))
	}
}

func TestCartView_Total(t *testing.T) {
	view := domain.NewCartView([]domain.Item{wrench, wrench, nails})

	assert.Equal(t, "$10.25", view.Total().String())
	assert.Equal(t, "$10.00", view.Lines[0].Subtotal().String())
	assert.False(t, view.IsEmpty())
	assert.True(t, domain.NewCartView(nil).IsEmpty())
}
