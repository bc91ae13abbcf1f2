package correlation

import (
	"sync"
	"time"
)

// Result is the settled outcome of a correlated request.
type Result[T any] struct {
	Value T
	Err   error
}

// Entry represents one in-flight request waiting for its tagged response.
// An entry settles at most once; later settle attempts are ignored.
type Entry[T any] struct {
	ID        string
	CreatedAt time.Time

	once sync.Once
	ch   chan Result[T]
}

func newEntry[T any](id string) *Entry[T] {
	return &Entry[T]{ID: id, CreatedAt: time.Now(), ch: make(chan Result[T], 1)}
}

// Done returns the channel receiving the single settled result.
func (e *Entry[T]) Done() <-chan Result[T] {
	return e.ch
}

// settle delivers the result unless the entry already settled. The channel is
// buffered so settling never blocks on an absent receiver.
func (e *Entry[T]) settle(value T, err error) bool {
	settled := false
	e.once.Do(func() {
		e.ch <- Result[T]{Value: value, Err: err}
		settled = true
	})
	return settled
}
