package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSequence(t *testing.T) {
	next := Sequence("n")
	assert.Equal(t, "n-1", next())
	assert.Equal(t, "n-2", next())

	prev := NewFunc
	defer func() { NewFunc = prev }()
	NewFunc = Sequence("req")
	assert.Equal(t, "req-1", New())
}
