package store

import (
	"context"
	"sync"

	"github.com/amirasaad/accountsystem/pkg/money"
)

// MemoryStore keeps the balance in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	balance money.Money
}

// NewMemoryStore returns a store holding initial.
func NewMemoryStore(initial money.Money) *MemoryStore {
	return &MemoryStore{balance: initial}
}

func (s *MemoryStore) Read(context.Context) (money.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance, nil
}

func (s *MemoryStore) Write(_ context.Context, balance money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
	return nil
}

func (s *MemoryStore) Close() error { return nil }
