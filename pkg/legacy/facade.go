// Package legacy keeps the call surface and console transcript of the batch
// account program on top of the operation dispatcher.
package legacy

import (
	"context"

	"github.com/amirasaad/accountsystem/pkg/operation"
)

// Render formats a result the way the batch program printed it.
func Render(res operation.Result) string {
	return res.Message() + "\n"
}

// Facade exposes the string-returning total/credit/debit calls of the batch
// program. It holds no logic beyond formatting.
type Facade struct {
	dispatcher operation.Dispatcher
}

// NewFacade wraps d.
func NewFacade(d operation.Dispatcher) *Facade {
	return &Facade{dispatcher: d}
}

// The legacy surface carries no context; calls run under context.Background.

// Total returns the current balance line.
func (f *Facade) Total() string {
	return Render(f.dispatcher.Execute(context.Background(), operation.ViewBalance, operation.NoAmount()))
}

// Credit credits amount and returns the outcome line.
func (f *Facade) Credit(amount float64) string {
	return Render(f.dispatcher.Execute(context.Background(), operation.Credit, operation.AmountFromFloat(amount)))
}

// Debit debits amount and returns the outcome line.
func (f *Facade) Debit(amount float64) string {
	return Render(f.dispatcher.Execute(context.Background(), operation.Debit, operation.AmountFromFloat(amount)))
}
