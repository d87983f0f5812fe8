// Package snapshot holds the transaction table every request computes from.
// A Snapshot is never modified after it is built; reloading swaps in a new one.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"retail-bi/analytics"
	"retail-bi/models"
)

// ErrNotLoaded is returned when no snapshot has been loaded yet or the last
// one was invalidated.
var ErrNotLoaded = errors.New("transaction snapshot not loaded")

// Loader yields the full transaction table.
type Loader interface {
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
}

// Snapshot is an immutable view of the transaction table.
type Snapshot struct {
	Version  uint64
	LoadedAt time.Time
	MinDate  time.Time
	MaxDate  time.Time
	rows     []models.Transaction
}

// New wraps rows in a snapshot. The caller must not modify rows afterwards.
func New(version uint64, rows []models.Transaction) *Snapshot {
	first, last := analytics.DateBounds(rows)
	return &Snapshot{
		Version:  version,
		LoadedAt: time.Now(),
		MinDate:  first,
		MaxDate:  last,
		rows:     rows,
	}
}

// Rows returns the transactions. The slice is shared and must be treated as
// read-only.
func (s *Snapshot) Rows() []models.Transaction {
	return s.rows
}

// Len returns the number of transactions.
func (s *Snapshot) Len() int {
	return len(s.rows)
}

// Holder owns the current snapshot and replaces it on Reload.
type Holder struct {
	loader  Loader
	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	mu       sync.Mutex // serializes reloads and guards onChange
	onChange []func(*Snapshot)
}

// NewHolder returns an empty holder that loads from loader.
func NewHolder(loader Loader) *Holder {
	return &Holder{loader: loader}
}

// OnChange registers fn to run after every reload or invalidation. fn
// receives the new snapshot, or nil after Invalidate.
func (h *Holder) OnChange(fn func(*Snapshot)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Current returns the loaded snapshot or ErrNotLoaded.
func (h *Holder) Current() (*Snapshot, error) {
	s := h.current.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

// Reload reads the whole table again and swaps it in. On failure the
// previous snapshot stays current.
func (h *Holder) Reload(ctx context.Context) (*Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	rows, err := h.loader.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	s := New(h.version.Add(1), rows)
	h.current.Store(s)
	log.Printf("[SNAPSHOT] Loaded %d transactions as version %d in %s", s.Len(), s.Version, time.Since(start).Round(time.Millisecond))

	for _, fn := range h.onChange {
		fn(s)
	}
	return s, nil
}

// Invalidate drops the current snapshot; requests fail with ErrNotLoaded
// until the next Reload.
func (h *Holder) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current.Store(nil)
	log.Println("[SNAPSHOT] Invalidated")
	for _, fn := range h.onChange {
		fn(nil)
	}
}
