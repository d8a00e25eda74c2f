// Package session is the in-memory store used when server.store is
// "memory". Every table is copy-on-write: a mutation publishes a new slice
// and a failed mutation leaves the published slice untouched.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
)

// ErrDuplicate is returned when a row with the same key already exists.
// Its text matches the duplicate-key check in shared/errors.
var ErrDuplicate = errors.New("duplicate key")

type table[T any] struct {
	mu   sync.RWMutex
	rows []*T
	key  func(*T) string
}

func newTable[T any](key func(*T) string) *table[T] {
	return &table[T]{key: key}
}

func clone[T any](p *T) *T {
	c := *p
	return &c
}

// snapshot returns the published slice. It is never written to.
func (t *table[T]) snapshot() []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

func (t *table[T]) restore(rows []*T) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()
}

func (t *table[T]) get(key string) (*T, bool) {
	for _, row := range t.snapshot() {
		if t.key(row) == key {
			return clone(row), true
		}
	}
	return nil, false
}

// find returns copies of the rows matching keep, in insertion order.
func (t *table[T]) find(keep func(*T) bool) []*T {
	var out []*T
	for _, row := range t.snapshot() {
		if keep == nil || keep(row) {
			out = append(out, clone(row))
		}
	}
	return out
}

func (t *table[T]) insert(rows ...*T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]struct{}, len(t.rows)+len(rows))
	for _, row := range t.rows {
		seen[t.key(row)] = struct{}{}
	}
	next := make([]*T, len(t.rows), len(t.rows)+len(rows))
	copy(next, t.rows)
	for _, row := range rows {
		k := t.key(row)
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, k)
		}
		seen[k] = struct{}{}
		next = append(next, clone(row))
	}
	t.rows = next
	return nil
}

// replace swaps the row stored under key for the result of fn. fn sees a
// copy of the current row; returning an error aborts without publishing.
func (t *table[T]) replace(key string, notFound error, fn func(current *T) (*T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, row := range t.rows {
		if t.key(row) != key {
			continue
		}
		updated, err := fn(clone(row))
		if err != nil {
			return err
		}
		next := make([]*T, len(t.rows))
		copy(next, t.rows)
		next[i] = clone(updated)
		t.rows = next
		return nil
	}
	return notFound
}

func (t *table[T]) remove(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, row := range t.rows {
		if t.key(row) != key {
			continue
		}
		next := make([]*T, 0, len(t.rows)-1)
		next = append(next, t.rows[:i]...)
		next = append(next, t.rows[i+1:]...)
		t.rows = next
		return true
	}
	return false
}

// page sorts items with less and cuts one page. Non-positive sizes return
// everything.
func page[T any](items []*T, less func(a, b *T) bool, pageNum, pageSize int) ([]*T, int64) {
	total := int64(len(items))
	if less != nil {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	}
	if pageSize <= 0 {
		if items == nil {
			return []*T{}, total
		}
		return items, total
	}
	if pageNum < 1 {
		pageNum = 1
	}
	start := (pageNum - 1) * pageSize
	if start >= len(items) {
		return []*T{}, total
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

type txKey struct{}

// Store owns every table of the application session.
type Store struct {
	txMu      sync.Mutex
	snapshots []func() func()

	machines     *table[machine.Machine]
	instruments  *table[instrument.Instrument]
	users        *table[user.User]
	breakdowns   *table[ticket.Breakdown]
	preventives  *table[ticket.Preventive]
	calibrations *table[ticket.Calibration]
}

func NewStore() *Store {
	s := &Store{
		machines:     newTable(func(m *machine.Machine) string { return m.ID() }),
		instruments:  newTable(func(i *instrument.Instrument) string { return i.ID() }),
		users:        newTable(func(u *user.User) string { return u.ID() }),
		breakdowns:   newTable(func(t *ticket.Breakdown) string { return t.ID() }),
		preventives:  newTable(func(t *ticket.Preventive) string { return t.ID() }),
		calibrations: newTable(func(t *ticket.Calibration) string { return t.ID() }),
	}
	s.snapshots = []func() func(){
		saver(s.machines),
		saver(s.instruments),
		saver(s.users),
		saver(s.breakdowns),
		saver(s.preventives),
		saver(s.calibrations),
	}
	return s
}

func saver[T any](t *table[T]) func() func() {
	return func() func() {
		rows := t.snapshot()
		return func() { t.restore(rows) }
	}
}

// RunInTransaction runs fn with every table snapshotted and restores the
// snapshots when fn fails. Transactions are serialized; nested calls join
// the outer one.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	restores := make([]func(), 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		restores = append(restores, snap())
	}
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}
