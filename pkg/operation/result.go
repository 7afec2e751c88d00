package operation

import (
	"fmt"

	"github.com/amirasaad/accountsystem/pkg/money"
)

// Result is the immutable outcome of an operation. Results are comparable with
// ==, which compares every field.
type Result struct {
	success    bool
	message    string
	balance    money.Money
	hasBalance bool
	kind       Kind
}

// Succeeded builds a successful result carrying the resulting balance.
func Succeeded(message string, balance money.Money) Result {
	return Result{success: true, message: message, balance: balance, hasBalance: true}
}

// SucceededWithoutBalance builds a successful result with no balance, for
// operations that neither read nor change it.
func SucceededWithoutBalance(message string) Result {
	return Result{success: true, message: message}
}

// Failed builds a failed result. Failed results never carry a balance.
// An empty kind is recorded as KindInternal so that a failure is never
// mistaken for success by kind.
func Failed(kind Kind, message string) Result {
	if kind == KindNone {
		kind = KindInternal
	}
	return Result{message: message, kind: kind}
}

// Success reports whether the operation succeeded.
func (r Result) Success() bool { return r.success }

// Message returns the human-readable outcome, without a trailing newline.
func (r Result) Message() string { return r.message }

// NewBalance returns the balance after the operation. ok is false when the
// operation failed or does not report a balance.
func (r Result) NewBalance() (balance money.Money, ok bool) {
	return r.balance, r.hasBalance
}

// Kind returns the failure kind, KindNone on success.
func (r Result) Kind() Kind { return r.kind }

// Err returns nil on success, otherwise an error wrapping the kind's sentinel.
func (r Result) Err() error {
	if r.success {
		return nil
	}
	return fmt.Errorf("%w: %s", r.kind.Err(), r.message)
}

// String returns the message.
func (r Result) String() string { return r.message }
