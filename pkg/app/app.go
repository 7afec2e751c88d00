package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/amirasaad/accountsystem/pkg/config"
	"github.com/amirasaad/accountsystem/pkg/eventbus"
	"github.com/amirasaad/accountsystem/pkg/journal"
	"github.com/amirasaad/accountsystem/pkg/legacy"
	"github.com/amirasaad/accountsystem/pkg/operation"
)

// Deps contains the infrastructure the App is assembled from.
type Deps struct {
	Store operation.BalanceStore
	// Counterparty is the destination of TRANSFER; nil leaves it unregistered.
	Counterparty operation.BalanceStore
	EventBus     eventbus.Bus
	Journal      *journal.Journal
	Logger       *slog.Logger
	// Closers are released by Close in reverse order.
	Closers []io.Closer
}

// Close releases every closer and joins their errors.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.Closers) - 1; i >= 0; i-- {
		if err := d.Closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.Closers = nil
	return errors.Join(errs...)
}

// App is the assembled application: its dependencies, config and operation registry.
type App struct {
	Deps     *Deps
	Config   *config.App
	Registry *operation.Registry
}

// New builds the operation registry over deps.Store and registers the
// configured extensions.
func New(deps *Deps, cfg *config.App) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []operation.Option{
		operation.WithLogger(logger.With("component", "registry")),
		operation.WithSerializedExecution(),
	}
	if deps.EventBus != nil {
		opts = append(opts, operation.WithPublisher(deps.EventBus))
	}
	registry := operation.NewRegistry(deps.Store, opts...)

	store := deps.Store
	if cfg != nil && cfg.Interest != nil {
		rate := cfg.Interest.Rate
		registry.Register(operation.Interest, func() operation.Operation {
			return operation.NewInterest(store, rate)
		})
		registry.Describe(operation.Interest, "Calculate and apply interest")
	}
	if cfg != nil && cfg.Fees != nil {
		fee := cfg.Fees.Amount
		registry.Register(operation.Fees, func() operation.Operation {
			return operation.NewFees(store, fee)
		})
		registry.Describe(operation.Fees, "Deduct management fee")
	}
	if deps.Counterparty != nil {
		destination := deps.Counterparty
		registry.Register(operation.Transfer, func() operation.Operation {
			return operation.NewTransfer(store, destination)
		})
		registry.Describe(operation.Transfer, "Transfer to counterparty account")
	}
	if deps.Journal != nil {
		history := deps.Journal
		registry.Register(operation.History, func() operation.Operation {
			return operation.NewHistory(history, 0)
		})
		description := "Show operation history (current session)"
		if history.Persistent() {
			description = "Show operation history"
		}
		registry.Describe(operation.History, description)
	}

	return &App{Deps: deps, Config: cfg, Registry: registry}
}

// Facade returns the legacy total/credit/debit surface.
func (a *App) Facade() *legacy.Facade {
	return legacy.NewFacade(a.Registry)
}

// Menu returns the legacy interactive loop over in and out.
func (a *App) Menu(in io.Reader, out io.Writer) *legacy.Menu {
	return legacy.NewMenu(a.Registry, in, out)
}
