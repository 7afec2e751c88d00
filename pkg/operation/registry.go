package operation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/accountsystem/pkg/eventbus"
	"github.com/amirasaad/accountsystem/pkg/registry"
	"github.com/google/uuid"
)

// Dispatcher is the entry point front ends depend on.
type Dispatcher interface {
	Execute(ctx context.Context, id ID, amount Amount) Result
	Register(id ID, factory Factory)
}

// Descriptor describes a registered operation.
type Descriptor struct {
	ID          ID
	Description string
	Builtin     bool
}

type entry struct {
	factory     Factory
	description string
	builtin     bool
}

// Registry maps operation identifiers to factories bound to one BalanceStore
// and executes operations by identifier.
//
// Registering an identifier that is already present replaces it: last writer
// wins, so callers may override the built-ins.
type Registry struct {
	store     BalanceStore
	entries   *registry.Registry[ID, entry]
	logger    *slog.Logger
	publisher eventbus.Publisher
	now       func() time.Time

	serialize bool
	execMu    sync.Mutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPublisher publishes an ExecutedEvent after every dispatch.
func WithPublisher(p eventbus.Publisher) Option {
	return func(r *Registry) { r.publisher = p }
}

// WithSerializedExecution makes Execute hold a mutex for the whole
// read-modify-write of each operation, for callers that dispatch concurrently
// against the same store.
func WithSerializedExecution() Option {
	return func(r *Registry) { r.serialize = true }
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates a Registry with VIEW_BALANCE, CREDIT and DEBIT
// registered against store.
func NewRegistry(store BalanceStore, opts ...Option) *Registry {
	r := &Registry{
		store:   store,
		entries: registry.New[ID, entry](),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.registerBuiltin(ViewBalance, "View account balance", func() Operation { return NewViewBalance(store) })
	r.registerBuiltin(Credit, "Credit account", func() Operation { return NewCredit(store) })
	r.registerBuiltin(Debit, "Debit account", func() Operation { return NewDebit(store) })
	return r
}

func (r *Registry) registerBuiltin(id ID, description string, factory Factory) {
	r.entries.Register(id, entry{factory: factory, description: description, builtin: true})
}

// Store returns the BalanceStore the built-ins are bound to.
func (r *Registry) Store() BalanceStore {
	return r.store
}

// Register installs or replaces the factory for id. A nil factory is ignored.
// The description of a replaced identifier is kept.
func (r *Registry) Register(id ID, factory Factory) {
	if factory == nil {
		r.logger.Warn("Register ignored: nil factory", "operation", id)
		return
	}
	description := string(id)
	if prev, ok := r.entries.Get(id); ok {
		description = prev.description
	}
	if r.entries.Register(id, entry{factory: factory, description: description}) {
		r.logger.Info("operation replaced", "operation", id)
		return
	}
	r.logger.Debug("operation registered", "operation", id)
}

// Describe sets the description shown by Available. It reports false when id is
// not registered.
func (r *Registry) Describe(id ID, description string) bool {
	return r.entries.Update(id, func(e entry) entry {
		e.description = description
		return e
	})
}

// Unregister removes id. It reports whether id was registered.
func (r *Registry) Unregister(id ID) bool {
	return r.entries.Unregister(id)
}

// IsRegistered reports whether id has a factory.
func (r *Registry) IsRegistered(id ID) bool {
	return r.entries.IsRegistered(id)
}

// Available lists the registered operations ordered by identifier.
func (r *Registry) Available() []Descriptor {
	ids := r.entries.ListRegistered()
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		e, ok := r.entries.Get(id)
		if !ok {
			continue
		}
		out = append(out, Descriptor{ID: id, Description: e.description, Builtin: e.builtin})
	}
	return out
}

// Execute runs the operation registered for id and returns its result
// unchanged. An unknown id yields a KindUnknownOperation failure. Execute never
// panics: a nil operation or a panicking one yields a KindInternal failure.
//
// The executed event is published after the serialization lock is released,
// so subscribers may call Execute themselves.
func (r *Registry) Execute(ctx context.Context, id ID, amount Amount) Result {
	logger := r.logger.With("operation", id, "amount", amount.String())
	res := r.run(ctx, id, amount, logger)

	if res.Success() {
		logger.Info("operation completed")
	} else {
		logger.Warn("operation failed", "kind", res.Kind(), "message", res.Message())
	}
	r.publish(ctx, id, amount, res, logger)
	return res
}

func (r *Registry) run(ctx context.Context, id ID, amount Amount, logger *slog.Logger) Result {
	if r.serialize {
		r.execMu.Lock()
		defer r.execMu.Unlock()
	}
	return r.dispatch(ctx, id, amount, logger)
}

func (r *Registry) dispatch(ctx context.Context, id ID, amount Amount, logger *slog.Logger) (res Result) {
	e, ok := r.entries.Get(id)
	if !ok {
		return Failed(KindUnknownOperation, fmt.Sprintf("Unknown operation type: %s", id))
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("operation panicked", "panic", p)
			res = Failed(KindInternal, fmt.Sprintf("Operation %s failed unexpectedly.", id))
		}
	}()

	op := e.factory()
	if op == nil {
		logger.Error("factory returned nil operation")
		return Failed(KindInternal, fmt.Sprintf("Operation %s is not available.", id))
	}
	return op.Execute(ctx, amount)
}

func (r *Registry) publish(ctx context.Context, id ID, amount Amount, res Result, logger *slog.Logger) {
	if r.publisher == nil {
		return
	}
	event := ExecutedEvent{
		EventID:   uuid.New(),
		Operation: id,
		Amount:    amount,
		Result:    res,
		At:        r.now(),
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		logger.Error("failed to publish executed event", "error", err)
	}
}
