package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("flowhistory", "0.0.1", fname))

	ctx, span := StartSpan(context.Background(), "history.test")
	span.WithAttributes(map[string]string{"flow.id": "f1"}).WithInt("graph.size", 3)
	_, child := StartSpan(ctx, "history.child")
	EndSpan(child, errors.New("boom"))
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "history.test")
	assert.Contains(t, string(data), "history.child")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.NotPanics(t, func() {
		span.WithAttributes(map[string]string{"a": "b"}).WithInt("n", 1)
		span.SetStatus(nil)
		EndSpan(span, nil)
	})
}
