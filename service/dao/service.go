// Package dao defines the storage abstraction for persisted history graphs
// together with the record stored per flow.
package dao

import (
	"context"
)

// Service is a keyed store of entities of type T.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

// Parameter narrows a List call, for example by encoding.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a list parameter; several values match any of them.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
