// Package operation implements the single-account operations and the registry
// that dispatches them by identifier.
//
// An Operation is created per call by the Factory registered for its ID, bound
// to the caller's BalanceStore, and discarded once Execute returns. Operations
// report every failure as a Result; nothing they detect is returned as an
// error or a panic.
package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirasaad/accountsystem/pkg/money"
)

// Operation is a unit of work over a BalanceStore.
type Operation interface {
	// ID describes the operation.
	ID() ID
	// Execute runs the operation. amount may be absent or malformed.
	Execute(ctx context.Context, amount Amount) Result
}

// Factory produces a fresh Operation bound to its store.
type Factory func() Operation

// Func adapts a function to the Operation interface.
type Func struct {
	Identifier ID
	Run        func(ctx context.Context, amount Amount) Result
}

// ID implements Operation.
func (f Func) ID() ID { return f.Identifier }

// Execute implements Operation.
func (f Func) Execute(ctx context.Context, amount Amount) Result {
	return f.Run(ctx, amount)
}

// storeFailure reports an error returned by the BalanceStore.
func storeFailure(err error) Result {
	return Failed(KindStoreFailure, fmt.Sprintf("Balance store unavailable: %v", err))
}

// positiveAmount validates amount for an operation that needs a strictly
// positive value. label is the capitalised operation name used in messages.
// When ok is false, res holds the InvalidAmount failure to return.
func positiveAmount(amount Amount, label string) (m money.Money, res Result, ok bool) {
	if !amount.Present() {
		return money.Zero, Failed(KindInvalidAmount,
			fmt.Sprintf("Amount required for %s operation.", strings.ToLower(label))), false
	}
	m, err := amount.Value()
	if err != nil || !m.IsPositive() {
		return money.Zero, Failed(KindInvalidAmount,
			fmt.Sprintf("%s amount must be positive.", label)), false
	}
	return m, Result{}, true
}
