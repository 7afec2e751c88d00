package operation

import (
	"context"
	"fmt"
	"strings"
)

// HistorySource lists recorded dispatches, oldest first.
type HistorySource interface {
	Entries() []ExecutedEvent
}

// HistoryOperation renders the dispatches recorded by a HistorySource.
// It ignores its amount and never touches the balance.
type HistoryOperation struct {
	source HistorySource
	limit  int
}

// NewHistory binds a HistoryOperation. limit > 0 keeps only the most recent
// entries.
func NewHistory(source HistorySource, limit int) *HistoryOperation {
	return &HistoryOperation{source: source, limit: limit}
}

// ID implements Operation.
func (o *HistoryOperation) ID() ID { return History }

// Execute implements Operation.
func (o *HistoryOperation) Execute(_ context.Context, _ Amount) Result {
	entries := o.source.Entries()
	if len(entries) == 0 {
		return SucceededWithoutBalance("No operations recorded.")
	}
	if o.limit > 0 && len(entries) > o.limit {
		entries = entries[len(entries)-o.limit:]
	}

	var b strings.Builder
	b.WriteString("Operation history:")
	for _, e := range entries {
		b.WriteByte('\n')
		b.WriteString(FormatEntry(e))
	}
	return SucceededWithoutBalance(b.String())
}

// FormatEntry renders one history line, e.g.
// "2026-10-14 09:30:00 CREDIT 250.00 -> 001250.00".
func FormatEntry(e ExecutedEvent) string {
	amount := "-"
	if v, err := e.Amount.Value(); err == nil {
		amount = v.String()
	} else if e.Amount.Present() {
		amount = "?"
	}

	outcome := fmt.Sprintf("failed (%s)", e.Result.Kind())
	if e.Result.Success() {
		outcome = "ok"
		if balance, ok := e.Result.NewBalance(); ok {
			outcome = "-> " + balance.Legacy()
		}
	}
	return fmt.Sprintf("%s %s %s %s", e.At.Format("2006-01-02 15:04:05"), e.Operation, amount, outcome)
}
