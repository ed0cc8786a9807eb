package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// StoreCurrency is the only currency the storefront prices in.
var StoreCurrency = currency.USD

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func MoneyFromCents(cents int64) Money {
	return Money{
		Amount:   decimal.New(cents, -2),
		Currency: StoreCurrency,
	}
}

// String renders the amount with two decimals, e.g. "$10.25".
func (m Money) String() string {
	if m.Currency == currency.USD {
		return "$" + m.Amount.StringFixed(2)
	}
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}
