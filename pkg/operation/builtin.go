package operation

import (
	"context"
	"fmt"
)

// ViewBalanceOperation reports the current balance. It ignores its amount and
// never writes.
type ViewBalanceOperation struct {
	store BalanceStore
}

// NewViewBalance binds a ViewBalanceOperation to store.
func NewViewBalance(store BalanceStore) *ViewBalanceOperation {
	return &ViewBalanceOperation{store: store}
}

// ID implements Operation.
func (o *ViewBalanceOperation) ID() ID { return ViewBalance }

// Execute implements Operation.
func (o *ViewBalanceOperation) Execute(ctx context.Context, _ Amount) Result {
	balance, err := o.store.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	return Succeeded(fmt.Sprintf("Current balance: %s", balance.Legacy()), balance)
}

// CreditOperation adds a positive amount to the balance.
type CreditOperation struct {
	store BalanceStore
}

// NewCredit binds a CreditOperation to store.
func NewCredit(store BalanceStore) *CreditOperation {
	return &CreditOperation{store: store}
}

// ID implements Operation.
func (o *CreditOperation) ID() ID { return Credit }

// Execute implements Operation.
func (o *CreditOperation) Execute(ctx context.Context, amount Amount) Result {
	m, res, ok := positiveAmount(amount, "Credit")
	if !ok {
		return res
	}

	balance, err := o.store.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	newBalance, err := balance.Add(m)
	if err != nil {
		return Failed(KindInvalidAmount, "Credit amount exceeds the maximum balance.")
	}
	if err := o.store.Write(ctx, newBalance); err != nil {
		return storeFailure(err)
	}
	return Succeeded(fmt.Sprintf("Amount credited. New balance: %s", newBalance.Legacy()), newBalance)
}

// DebitOperation removes a positive amount that does not exceed the balance.
type DebitOperation struct {
	store BalanceStore
}

// NewDebit binds a DebitOperation to store.
func NewDebit(store BalanceStore) *DebitOperation {
	return &DebitOperation{store: store}
}

// ID implements Operation.
func (o *DebitOperation) ID() ID { return Debit }

// Execute implements Operation.
func (o *DebitOperation) Execute(ctx context.Context, amount Amount) Result {
	m, res, ok := positiveAmount(amount, "Debit")
	if !ok {
		return res
	}

	balance, err := o.store.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	if m.GreaterThan(balance) {
		return Failed(KindInsufficientFunds, "Insufficient funds for this debit.")
	}
	// m <= balance and m > 0, so the subtraction cannot overflow.
	newBalance, _ := balance.Sub(m)
	if err := o.store.Write(ctx, newBalance); err != nil {
		return storeFailure(err)
	}
	return Succeeded(fmt.Sprintf("Amount debited. New balance: %s", newBalance.Legacy()), newBalance)
}
