// Package correlation matches asynchronous responses to the callers waiting
// for them. Every request is registered under a generated id when it is
// dispatched and removed when it settles, times out or is rejected, so a
// late response for a removed id finds nothing and is dropped.
package correlation

import "sync"

// Table is a concurrency-safe pending-request table keyed by request id.
type Table[T any] struct {
	mu      sync.Mutex
	entries map[string]*Entry[T]
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{entries: make(map[string]*Entry[T])}
}

// Register inserts a new entry. If the id is already pending the existing
// entry is returned together with false.
func (t *Table[T]) Register(id string) (*Entry[T], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.entries[id]; ok {
		return existing, false
	}
	entry := newEntry[T](id)
	t.entries[id] = entry
	return entry, true
}

// Resolve removes the entry and delivers value to its waiter. It returns
// false when the id is no longer pending (stale or unknown response).
func (t *Table[T]) Resolve(id string, value T) bool {
	return t.settle(id, value, nil)
}

// Reject removes the entry and delivers err to its waiter.
func (t *Table[T]) Reject(id string, err error) bool {
	var zero T
	return t.settle(id, zero, err)
}

func (t *Table[T]) settle(id string, value T, err error) bool {
	t.mu.Lock()
	entry, ok := t.entries[id]
	delete(t.entries, id)
	t.mu.Unlock()
	if !ok {
		return false
	}
	return entry.settle(value, err)
}

// Remove drops the entry without settling it; used when the waiter gave up.
func (t *Table[T]) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	delete(t.entries, id)
	return ok
}

// RejectAll settles every pending entry with err and empties the table. It
// returns the number of rejected entries.
func (t *Table[T]) RejectAll(err error) int {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[string]*Entry[T])
	t.mu.Unlock()
	var zero T
	for _, entry := range entries {
		entry.settle(zero, err)
	}
	return len(entries)
}

// RejectWhere settles and removes every entry accepted by match.
func (t *Table[T]) RejectWhere(match func(id string) bool, err error) int {
	t.mu.Lock()
	var rejected []*Entry[T]
	for id, entry := range t.entries {
		if match(id) {
			rejected = append(rejected, entry)
			delete(t.entries, id)
		}
	}
	t.mu.Unlock()
	var zero T
	for _, entry := range rejected {
		entry.settle(zero, err)
	}
	return len(rejected)
}

// Len returns the number of pending entries.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
