package operation

import (
	"context"

	"github.com/amirasaad/accountsystem/pkg/money"
)

// BalanceStore is the single scalar balance an operation works on. It is owned
// and provided by the caller. Read must reflect the last successful Write.
type BalanceStore interface {
	Read(ctx context.Context) (money.Money, error)
	Write(ctx context.Context, balance money.Money) error
}
