package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/viant/flowhistory/service/messaging"
)

// ErrAlreadyProcessed is returned when a message is acked or nacked twice.
var ErrAlreadyProcessed = errors.New("messaging: message already processed")

// Config for memory queue implementation
type Config struct {
	QueueBuffer int
}

// DefaultConfig returns the default queue configuration
func DefaultConfig() Config {
	return Config{QueueBuffer: 64}
}

// Message implements messaging.Message for the in-memory queue. Messages are
// delivered at most once: a failed message is reported to its producer, never
// redelivered.
type Message[T any] struct {
	payload   T
	mu        sync.Mutex
	processed bool
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack marks the message processed
func (m *Message[T]) Ack() error {
	return m.settle()
}

// Nack marks the message processed; the failure is reported by the consumer
func (m *Message[T]) Nack(error) error {
	return m.settle()
}

func (m *Message[T]) settle() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrAlreadyProcessed
	}
	m.processed = true
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages  chan *Message[T]
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		done:     make(chan struct{}),
	}
}

// Publish adds a new item to the queue, blocking while the buffer is full
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	select {
	case <-q.done:
		return messaging.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := &Message[T]{payload: *t}
	select {
	case q.messages <- msg:
		return nil
	case <-q.done:
		return messaging.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-q.done:
		return nil, messaging.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the queue. It is safe to call more than once.
func (q *Queue[T]) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}

// Drain removes and returns every buffered payload without delivering it.
func (q *Queue[T]) Drain() []T {
	var ret []T
	for {
		select {
		case msg := <-q.messages:
			ret = append(ret, msg.payload)
		default:
			return ret
		}
	}
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
