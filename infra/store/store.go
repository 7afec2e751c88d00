// Package store provides the BalanceStore backends: process memory, a JSON
// file, a Postgres table through gorm and a Redis key.
package store

import (
	"errors"

	"github.com/amirasaad/accountsystem/pkg/operation"
)

var (
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown store driver")
	// ErrCorruptBalance is returned when a persisted balance cannot be parsed.
	ErrCorruptBalance = errors.New("stored balance is corrupt")
)

// Store is a BalanceStore that owns a resource.
type Store interface {
	operation.BalanceStore
	Close() error
}
