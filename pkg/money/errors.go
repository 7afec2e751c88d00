package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when a value cannot be represented as money:
	// non-numeric text, NaN or an infinity.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when a value or an arithmetic result does not
	// fit in int64 cents.
	ErrAmountOverflow = errors.New("amount exceeds maximum representable value")
)
