// Package money provides currency-safe monetary values using integer minor
// units. Statement imports deal in RON by default; arithmetic goes through
// go-money so mismatched currencies fail loudly instead of summing.
package money

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// RON is the default currency for Romanian bank statements.
const RON = "RON"

// Money is an immutable monetary value with a currency.
type Money struct {
	m *money.Money
}

// New creates Money from minor units (bani for RON).
func New(amountMinor int64, currencyCode string) *Money {
	return &Money{m: money.New(amountMinor, currencyCode)}
}

// NewFromDecimal converts an exact decimal amount into Money, rounding to
// the currency's minor unit.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(RON)
	}
	minor := amount.Mul(decimal.New(1, int32(currency.Fraction))).Round(0).IntPart()
	return New(minor, currencyCode)
}

// Zero returns a zero value in the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// Add sums two values of the same currency.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || other == nil {
		return nil, fmt.Errorf("cannot add nil money values")
	}
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, fmt.Errorf("add %s to %s: %w", other.Currency(), m.Currency(), err)
	}
	return &Money{m: sum}, nil
}

// IsZero reports whether the value is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// ToDecimal converts back to an exact decimal amount.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	fraction := int32(m.m.Currency().Fraction)
	return decimal.New(m.m.Amount(), -fraction)
}

// Display renders the value with its currency symbol, locale-formatted.
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Display()
}

func (m *Money) String() string {
	return m.Display()
}
