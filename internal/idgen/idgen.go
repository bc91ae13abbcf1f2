package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// NewFunc is the active generator. Override in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier.
func New() string { return NewFunc() }

// Sequence returns a generator producing prefix-1, prefix-2, ... Handy as a
// NewFunc replacement when tests need predictable ids.
func Sequence(prefix string) func() string {
	var n atomic.Uint64
	return func() string {
		return prefix + "-" + strconv.FormatUint(n.Add(1), 10)
	}
}
