package operation

import (
	"context"
	"sync"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/stretchr/testify/mock"
)

// memStore is a minimal BalanceStore for tests that counts writes.
type memStore struct {
	mu      sync.Mutex
	balance money.Money
	writes  int
}

func newMemStore(balance string) *memStore {
	return &memStore{balance: money.MustParse(balance)}
}

func (s *memStore) Read(context.Context) (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance, nil
}

func (s *memStore) Write(_ context.Context, balance money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
	s.writes++
	return nil
}

func (s *memStore) value() money.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// MockStore is a testify mock BalanceStore used to inject store failures.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Read(ctx context.Context) (money.Money, error) {
	args := m.Called(ctx)
	return args.Get(0).(money.Money), args.Error(1)
}

func (m *MockStore) Write(ctx context.Context, balance money.Money) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func amt(s string) Amount {
	return AmountOf(money.MustParse(s))
}
