package operation

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/google/uuid"
)

// EventExecuted is the event type published after every dispatch.
const EventExecuted = "operation.executed"

// ExecutedEvent records one call to Registry.Execute and its outcome.
type ExecutedEvent struct {
	EventID   uuid.UUID
	Operation ID
	Amount    Amount
	Result    Result
	At        time.Time
}

// Type implements eventbus.Event.
func (ExecutedEvent) Type() string { return EventExecuted }

// executedRecord is the JSON form of ExecutedEvent. A malformed amount keeps
// only its error text.
type executedRecord struct {
	EventID       uuid.UUID    `json:"event_id"`
	Operation     ID           `json:"operation"`
	AmountPresent bool         `json:"amount_present,omitempty"`
	Amount        *money.Money `json:"amount,omitempty"`
	AmountError   string       `json:"amount_error,omitempty"`
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	Balance       *money.Money `json:"balance,omitempty"`
	Kind          Kind         `json:"kind,omitempty"`
	At            time.Time    `json:"at"`
}

// MarshalJSON implements json.Marshaler.
func (e ExecutedEvent) MarshalJSON() ([]byte, error) {
	rec := executedRecord{
		EventID:       e.EventID,
		Operation:     e.Operation,
		AmountPresent: e.Amount.present,
		Success:       e.Result.success,
		Message:       e.Result.message,
		Kind:          e.Result.kind,
		At:            e.At,
	}
	if e.Amount.present {
		if e.Amount.err != nil {
			rec.AmountError = e.Amount.err.Error()
		} else {
			v := e.Amount.value
			rec.Amount = &v
		}
	}
	if e.Result.hasBalance {
		b := e.Result.balance
		rec.Balance = &b
	}
	return json.Marshal(rec)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *ExecutedEvent) UnmarshalJSON(data []byte) error {
	var rec executedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	amount := NoAmount()
	switch {
	case !rec.AmountPresent:
	case rec.AmountError != "":
		amount = Amount{present: true, err: errors.New(rec.AmountError)}
	case rec.Amount != nil:
		amount = AmountOf(*rec.Amount)
	default:
		return errors.New("executed event: amount present without value")
	}

	result := Result{success: rec.Success, message: rec.Message, kind: rec.Kind}
	if rec.Balance != nil {
		result.balance = *rec.Balance
		result.hasBalance = true
	}

	*e = ExecutedEvent{
		EventID:   rec.EventID,
		Operation: rec.Operation,
		Amount:    amount,
		Result:    result,
		At:        rec.At,
	}
	return nil
}
