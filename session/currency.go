package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code a session was played in.
type Currency string

const (
	USD Currency = money.USD
	CNY Currency = money.CNY
)

// CNYToUSD is the fixed number of USD per CNY.
const CNYToUSD = 0.13837

// ErrUnknownCurrency is returned for codes that are not ISO currencies
// or that have no conversion rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// ParseCurrency validates a currency code against the ISO table.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" || money.GetCurrency(code) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return Currency(code), nil
}

// Rates maps a currency to the number of USD one unit of it is worth.
type Rates map[Currency]decimal.Decimal

// DefaultRates returns the built-in conversion table.
func DefaultRates() Rates {
	return Rates{
		USD: decimal.NewFromInt(1),
		CNY: decimal.NewFromFloat(CNYToUSD),
	}
}

// RatesFromFloats builds a rate table from plain floats, as found in config files.
// USD is always present with a rate of 1.
func RatesFromFloats(m map[string]float64) (Rates, error) {
	rates := Rates{USD: decimal.NewFromInt(1)}
	for code, v := range m {
		c, err := ParseCurrency(code)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("rate for %s must be positive", c)
		}
		rates[c] = decimal.NewFromFloat(v)
	}
	return rates, nil
}

// Rate returns the USD rate of c.
func (r Rates) Rate(c Currency) (decimal.Decimal, error) {
	rate, ok := r[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %q", ErrUnknownCurrency, c)
	}
	return rate, nil
}

// ToUSD converts an amount in c to USD without rounding.
func (r Rates) ToUSD(amount decimal.Decimal, c Currency) (decimal.Decimal, error) {
	rate, err := r.Rate(c)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}
