package operation

import (
	"context"
	"fmt"
	"reflect"
)

// TransferOperation moves a positive amount from its source store to a
// counterparty store. The source is restored if the counterparty write fails.
type TransferOperation struct {
	source      BalanceStore
	destination BalanceStore
}

// NewTransfer binds a TransferOperation from source to destination.
func NewTransfer(source, destination BalanceStore) *TransferOperation {
	return &TransferOperation{source: source, destination: destination}
}

// ID implements Operation.
func (o *TransferOperation) ID() ID { return Transfer }

// Execute implements Operation. Source and destination must be distinct
// stores.
func (o *TransferOperation) Execute(ctx context.Context, amount Amount) Result {
	if sameStore(o.source, o.destination) {
		return Failed(KindInternal, "Transfer source and destination must be different accounts.")
	}
	m, res, ok := positiveAmount(amount, "Transfer")
	if !ok {
		return res
	}

	balance, err := o.source.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	if m.GreaterThan(balance) {
		return Failed(KindInsufficientFunds, "Insufficient funds for this transfer.")
	}
	counterparty, err := o.destination.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	credited, err := counterparty.Add(m)
	if err != nil {
		return Failed(KindInvalidAmount, "Transfer amount exceeds the counterparty maximum balance.")
	}

	newBalance, _ := balance.Sub(m)
	if err := o.source.Write(ctx, newBalance); err != nil {
		return storeFailure(err)
	}
	if err := o.destination.Write(ctx, credited); err != nil {
		if rerr := o.source.Write(ctx, balance); rerr != nil {
			return storeFailure(fmt.Errorf("%w (source not restored: %v)", err, rerr))
		}
		return storeFailure(err)
	}

	return Succeeded(fmt.Sprintf("Amount transferred. New balance: %s", newBalance.Legacy()), newBalance)
}

// sameStore reports whether a and b are the same comparable store value.
func sameStore(a, b BalanceStore) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	return ta == reflect.TypeOf(b) && ta.Comparable() && a == b
}
