package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/amirasaad/accountsystem/pkg/money"
)

// balanceFile is the on-disk layout of a JSONStore.
type balanceFile struct {
	Balance   money.Money `json:"balance"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// JSONStore persists the balance in a JSON file. A missing file reads as the
// initial balance. Writes replace the file atomically through a temporary file
// in the same directory.
type JSONStore struct {
	mu      sync.Mutex
	path    string
	initial money.Money
	now     func() time.Time
}

// NewJSONStore returns a store backed by path.
func NewJSONStore(path string, initial money.Money) *JSONStore {
	return &JSONStore{path: path, initial: initial, now: time.Now}
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Read(context.Context) (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.initial, nil
	}
	if err != nil {
		return money.Zero, fmt.Errorf("read balance file: %w", err)
	}

	var f balanceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return money.Zero, fmt.Errorf("%w: %s: %w", ErrCorruptBalance, s.path, err)
	}
	return f.Balance, nil
}

func (s *JSONStore) Write(_ context.Context, balance money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(balanceFile{Balance: balance, UpdatedAt: s.now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp balance file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp balance file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp balance file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp balance file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace balance file: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
