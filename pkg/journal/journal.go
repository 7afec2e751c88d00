// Package journal records dispatched operations from the event bus and serves
// them back to the HISTORY operation. A journal opened on a file keeps its
// entries across processes as JSON lines.
package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/amirasaad/accountsystem/pkg/eventbus"
	"github.com/amirasaad/accountsystem/pkg/operation"
)

// DefaultCapacity bounds the number of entries kept in memory.
const DefaultCapacity = 1000

// maxLine bounds one persisted entry.
const maxLine = 1 << 20

// ErrCorruptEntry is returned by Open when a line cannot be decoded.
var ErrCorruptEntry = errors.New("corrupt journal entry")

// Journal is a bounded, thread-safe log of ExecutedEvents. When full, the
// oldest entry is dropped from memory. With a path, every entry is also
// appended to that file.
type Journal struct {
	mu       sync.RWMutex
	entries  []operation.ExecutedEvent
	capacity int
	path     string
}

// New creates a Journal. capacity <= 0 uses DefaultCapacity.
func New(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{capacity: capacity}
}

// Open returns a Journal persisted at path, loading the most recent capacity
// entries already there. A missing file starts empty.
func Open(path string, capacity int) (*Journal, error) {
	j := New(capacity)
	j.path = path

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e operation.ExecutedEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %w", ErrCorruptEntry, path, line, err)
		}
		j.remember(e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return j, nil
}

// Persistent reports whether entries outlive the process.
func (j *Journal) Persistent() bool { return j.path != "" }

// Path returns the backing file, or "" for an in-memory journal.
func (j *Journal) Path() string { return j.path }

// Attach subscribes j to executed events on bus.
func (j *Journal) Attach(bus eventbus.Bus) {
	bus.Subscribe(operation.EventExecuted, j.Handle)
}

// Handle records an ExecutedEvent. It is an eventbus.HandlerFunc.
func (j *Journal) Handle(_ context.Context, event eventbus.Event) error {
	e, ok := event.(operation.ExecutedEvent)
	if !ok {
		return fmt.Errorf("journal: unexpected event %T", event)
	}
	return j.Record(e)
}

// Record appends e. A persistent journal writes e to its file first and keeps
// it in memory only when the write succeeded.
func (j *Journal) Record(e operation.ExecutedEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.path != "" {
		if err := j.appendLine(e); err != nil {
			return err
		}
	}
	j.remember(e)
	return nil
}

func (j *Journal) appendLine(e operation.ExecutedEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("append journal: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

// remember keeps e in memory; j.mu must be held or j unshared.
func (j *Journal) remember(e operation.ExecutedEvent) {
	if len(j.entries) == j.capacity {
		copy(j.entries, j.entries[1:])
		j.entries = j.entries[:len(j.entries)-1]
	}
	j.entries = append(j.entries, e)
}

// Entries returns a copy of the recorded events, oldest first.
func (j *Journal) Entries() []operation.ExecutedEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]operation.ExecutedEvent(nil), j.entries...)
}

// Len returns the number of recorded events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}
