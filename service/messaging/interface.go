// Package messaging defines the queue abstraction used to hand work to
// background goroutines, such as compression requests sent to the
// compression worker.
package messaging

import (
	"context"
	"errors"
)

// ErrClosed is returned by Publish and Consume once a queue has been closed.
var ErrClosed = errors.New("messaging: queue closed")

// Queue represents an abstract message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume blocks until a message is available, the context is done or
	// the queue is closed
	Consume(ctx context.Context) (Message[T], error)

	// Close stops the queue; pending messages are discarded
	Close() error
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message; the message is
	// not redelivered
	Nack(err error) error
}
