// Package money provides the fixed-point monetary value used for balances and
// operation amounts.
//
// Invariants:
//   - Amount is always stored in the smallest unit (cents, two decimal places).
//   - Inputs with more precision are rounded half away from zero to cents.
//   - Comparisons and arithmetic are integer operations; no float equality is
//     ever used at the zero boundary.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the number of decimal places kept by Money.
const Decimals = 2

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Money is an amount expressed in cents.
// The zero value is 0.00 and Money values are comparable with ==.
type Money struct {
	cents int64
}

// Zero is 0.00.
var Zero = Money{}

// FromCents creates Money from a count of cents.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// FromDecimal converts d to Money, rounding to cents.
func FromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Round(Decimals).Shift(Decimals)
	if shifted.GreaterThan(maxCents) || shifted.LessThan(minCents) {
		return Zero, fmt.Errorf("%w: %s", ErrAmountOverflow, d.String())
	}
	return Money{cents: shifted.IntPart()}, nil
}

// FromFloat converts f to Money, rounding to cents.
// NaN and infinities are rejected with ErrInvalidAmount.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	return FromDecimal(decimal.NewFromFloat(f))
}

// Parse reads a decimal string such as "250", "250.5" or "1250.00".
func Parse(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Zero, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money.MustParse(%q): %v", s, err))
	}
	return m
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Decimal returns the amount as a decimal with two places.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -Decimals)
}

// Float64 returns the amount in main units. It is lossy and meant for display
// or legacy callers only.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool { return m.cents > 0 }

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool { return m.cents < 0 }

// IsZero reports whether m == 0.
func (m Money) IsZero() bool { return m.cents == 0 }

// Cmp compares m and other and returns -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool { return m.cents > other.cents }

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool { return m.cents < other.cents }

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	sum := m.cents + other.cents
	if (other.cents > 0 && sum < m.cents) || (other.cents < 0 && sum > m.cents) {
		return Zero, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, m, other)
	}
	return Money{cents: sum}, nil
}

// Sub returns m - other. The result may be negative.
func (m Money) Sub(other Money) (Money, error) {
	diff := m.cents - other.cents
	if (other.cents > 0 && diff > m.cents) || (other.cents < 0 && diff < m.cents) {
		return Zero, fmt.Errorf("%w: %s - %s", ErrAmountOverflow, m, other)
	}
	return Money{cents: diff}, nil
}

// MulRate returns m * rate rounded to cents.
func (m Money) MulRate(rate decimal.Decimal) (Money, error) {
	return FromDecimal(m.Decimal().Mul(rate))
}

// String returns the amount with two decimals, e.g. "1250.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(Decimals)
}

// Legacy returns the amount in the PIC 9(6)V99 layout of the batch program:
// six zero-padded integer digits and two decimals, e.g. "001250.00".
// Values with more than six integer digits are printed in full.
func (m Money) Legacy() string {
	sign := ""
	abs := uint64(m.cents)
	if m.cents < 0 {
		sign = "-"
		abs = uint64(-(m.cents + 1)) + 1
	}
	return fmt.Sprintf("%s%06d.%02d", sign, abs/100, abs%100)
}

// MarshalText implements encoding.TextMarshaler using String.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
