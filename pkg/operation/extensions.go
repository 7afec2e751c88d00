package operation

import (
	"context"
	"fmt"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/shopspring/decimal"
)

// InterestOperation credits balance * rate, rounded to cents. It ignores its
// amount and refuses to run on a zero or negative balance.
type InterestOperation struct {
	store BalanceStore
	rate  decimal.Decimal
}

// NewInterest binds an InterestOperation with the given rate (0.025 = 2.5%).
func NewInterest(store BalanceStore, rate decimal.Decimal) *InterestOperation {
	return &InterestOperation{store: store, rate: rate}
}

// ID implements Operation.
func (o *InterestOperation) ID() ID { return Interest }

// Execute implements Operation.
func (o *InterestOperation) Execute(ctx context.Context, _ Amount) Result {
	balance, err := o.store.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	if !balance.IsPositive() {
		return Failed(KindIneligibleBalance, "No interest on zero or negative balance.")
	}

	interest, err := balance.MulRate(o.rate)
	if err != nil {
		return Failed(KindInvalidAmount, "Interest exceeds the maximum balance.")
	}
	newBalance, err := balance.Add(interest)
	if err != nil {
		return Failed(KindInvalidAmount, "Interest exceeds the maximum balance.")
	}
	if err := o.store.Write(ctx, newBalance); err != nil {
		return storeFailure(err)
	}

	msg := fmt.Sprintf("Interest applied (%s%%): %s\nNew balance: %s",
		o.rate.Shift(2).StringFixed(1), interest.Legacy(), newBalance.Legacy())
	return Succeeded(msg, newBalance)
}

// FeesOperation deducts a fixed management fee. It ignores its amount.
type FeesOperation struct {
	store BalanceStore
	fee   money.Money
}

// NewFees binds a FeesOperation charging fee.
func NewFees(store BalanceStore, fee money.Money) *FeesOperation {
	return &FeesOperation{store: store, fee: fee}
}

// ID implements Operation.
func (o *FeesOperation) ID() ID { return Fees }

// Execute implements Operation.
func (o *FeesOperation) Execute(ctx context.Context, _ Amount) Result {
	balance, err := o.store.Read(ctx)
	if err != nil {
		return storeFailure(err)
	}
	if balance.LessThan(o.fee) {
		return Failed(KindInsufficientFunds, fmt.Sprintf("Insufficient funds for fee: %s", o.fee.Legacy()))
	}

	newBalance, err := balance.Sub(o.fee)
	if err != nil {
		return Failed(KindInvalidAmount, "Fee exceeds the minimum balance.")
	}
	if err := o.store.Write(ctx, newBalance); err != nil {
		return storeFailure(err)
	}

	msg := fmt.Sprintf("Management fee deducted: %s\nNew balance: %s", o.fee.Legacy(), newBalance.Legacy())
	return Succeeded(msg, newBalance)
}
