package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD formats an amount in dollars, e.g. "$1,234.56".
func USD(x float64) string {
	return Money(x, money.USD)
}

// Money formats an amount in the given currency using its display rules.
func Money(x float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return decimal.NewFromFloat(x).StringFixed(2) + " " + code
	}
	minor := decimal.NewFromFloat(x).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}
