package operation

import (
	"errors"
	"fmt"

	"github.com/amirasaad/accountsystem/pkg/money"
)

// ErrAmountMissing is returned by Amount.Value when no amount was supplied.
var ErrAmountMissing = errors.New("amount missing")

// Amount is the optional input of an operation. It may be absent, a valid
// money value, or malformed input that failed to parse. Malformed input is
// carried to the operation so that it can report InvalidAmount itself.
type Amount struct {
	value   money.Money
	err     error
	present bool
}

// NoAmount returns an absent amount.
func NoAmount() Amount {
	return Amount{}
}

// AmountOf wraps a money value.
func AmountOf(m money.Money) Amount {
	return Amount{value: m, present: true}
}

// AmountFromFloat converts f. NaN and infinities produce a malformed amount.
func AmountFromFloat(f float64) Amount {
	m, err := money.FromFloat(f)
	return Amount{value: m, err: err, present: true}
}

// AmountFromString parses s, e.g. a line typed at a prompt.
func AmountFromString(s string) Amount {
	m, err := money.Parse(s)
	return Amount{value: m, err: err, present: true}
}

// Present reports whether an amount was supplied, valid or not.
func (a Amount) Present() bool {
	return a.present
}

// Value returns the money value. It returns ErrAmountMissing when absent and
// the parse error when malformed.
func (a Amount) Value() (money.Money, error) {
	if !a.present {
		return money.Zero, ErrAmountMissing
	}
	if a.err != nil {
		return money.Zero, a.err
	}
	return a.value, nil
}

// String renders the amount for logs.
func (a Amount) String() string {
	switch {
	case !a.present:
		return "<none>"
	case a.err != nil:
		return fmt.Sprintf("<invalid: %v>", a.err)
	default:
		return a.value.String()
	}
}
