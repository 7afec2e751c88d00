package initializer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/amirasaad/accountsystem/infra/store"
	"github.com/amirasaad/accountsystem/pkg/app"
	"github.com/amirasaad/accountsystem/pkg/config"
	"github.com/amirasaad/accountsystem/pkg/eventbus"
	"github.com/amirasaad/accountsystem/pkg/journal"
	"github.com/amirasaad/accountsystem/pkg/money"
)

// ErrCounterpartyIsStore is returned when TRANSFER would point at the
// account's own balance file.
var ErrCounterpartyIsStore = errors.New("transfer counterparty is the account store")

// InitializeDependencies builds the logger, balance stores, event bus and
// journal described by cfg. Callers release them with deps.Close.
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	defer func() {
		if err != nil {
			_ = deps.Close()
			deps = nil
		}
	}()

	if err := checkCounterparty(cfg); err != nil {
		logger.Error("Invalid transfer counterparty", "error", err)
		return deps, err
	}

	balanceStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize balance store", "driver", cfg.Store.Driver, "error", err)
		return deps, fmt.Errorf("failed to initialize balance store: %w", err)
	}
	deps.Store = balanceStore
	deps.Closers = append(deps.Closers, balanceStore)

	if cfg.Transfer != nil && cfg.Transfer.CounterpartyPath != "" {
		logger.Debug("Transfer counterparty enabled", "path", cfg.Transfer.CounterpartyPath)
		counterparty := store.NewJSONStore(cfg.Transfer.CounterpartyPath, money.Zero)
		deps.Counterparty = counterparty
		deps.Closers = append(deps.Closers, counterparty)
	}

	bus := eventbus.NewSimpleEventBus(logger.With("component", "eventbus"))
	deps.EventBus = bus

	capacity, path := journal.DefaultCapacity, journalPath(cfg)
	if cfg.Journal != nil && cfg.Journal.Capacity > 0 {
		capacity = cfg.Journal.Capacity
	}
	if path == "" {
		logger.Debug("Operation history kept for this session only")
		deps.Journal = journal.New(capacity)
	} else {
		logger.Debug("Operation history persisted", "path", path)
		deps.Journal, err = journal.Open(path, capacity)
		if err != nil {
			return deps, fmt.Errorf("failed to open journal: %w", err)
		}
	}
	deps.Journal.Attach(bus)

	return deps, nil
}

// journalPath returns the configured history file, or one next to a JSON
// balance file ("balance.json" gives "balance.history.jsonl").
func journalPath(cfg *config.App) string {
	if cfg.Journal != nil && cfg.Journal.Path != "" {
		return cfg.Journal.Path
	}
	if cfg.Store == nil || cfg.Store.Driver != config.DriverJSON || cfg.Store.Path == "" {
		return ""
	}
	p := cfg.Store.Path
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".history.jsonl"
}

// checkCounterparty rejects a counterparty file that is the JSON store itself.
func checkCounterparty(cfg *config.App) error {
	if cfg.Transfer == nil || cfg.Transfer.CounterpartyPath == "" {
		return nil
	}
	if cfg.Store == nil || cfg.Store.Driver != config.DriverJSON {
		return nil
	}
	storePath, err := filepath.Abs(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}
	counterpartyPath, err := filepath.Abs(cfg.Transfer.CounterpartyPath)
	if err != nil {
		return fmt.Errorf("resolve counterparty path: %w", err)
	}
	if storePath == counterpartyPath {
		return fmt.Errorf("%w: %s", ErrCounterpartyIsStore, storePath)
	}
	return nil
}
