package operation

import "errors"

// Kind classifies a failed Result.
type Kind string

// Failure kinds.
const (
	// KindNone is the kind of a successful result.
	KindNone Kind = ""
	// KindInvalidAmount: amount missing, malformed, zero or negative.
	KindInvalidAmount Kind = "InvalidAmount"
	// KindInsufficientFunds: the amount exceeds the current balance.
	KindInsufficientFunds Kind = "InsufficientFunds"
	// KindUnknownOperation: no factory is registered for the identifier.
	KindUnknownOperation Kind = "UnknownOperation"
	// KindIneligibleBalance: the balance does not qualify, e.g. interest on a
	// zero balance.
	KindIneligibleBalance Kind = "IneligibleBalance"
	// KindStoreFailure: the balance store could not be read or written.
	KindStoreFailure Kind = "StoreFailure"
	// KindInternal: a factory or operation misbehaved (nil operation, panic).
	KindInternal Kind = "Internal"
)

// Sentinel errors matching each failure kind, usable with errors.Is on
// Result.Err.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrIneligibleBalance = errors.New("ineligible balance")
	ErrStoreFailure      = errors.New("balance store failure")
	ErrInternal          = errors.New("internal operation error")
)

var kindErrors = map[Kind]error{
	KindInvalidAmount:     ErrInvalidAmount,
	KindInsufficientFunds: ErrInsufficientFunds,
	KindUnknownOperation:  ErrUnknownOperation,
	KindIneligibleBalance: ErrIneligibleBalance,
	KindStoreFailure:      ErrStoreFailure,
	KindInternal:          ErrInternal,
}

// Err returns the sentinel error for k, or nil for KindNone.
// Unregistered kinds defined by callers map to ErrInternal.
func (k Kind) Err() error {
	if k == KindNone {
		return nil
	}
	if err, ok := kindErrors[k]; ok {
		return err
	}
	return ErrInternal
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }
