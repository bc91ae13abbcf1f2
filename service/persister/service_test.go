package persister

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowhistory/metrics"
	"github.com/viant/flowhistory/model/flow"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/policy"
	"github.com/viant/flowhistory/service/compression"
	"github.com/viant/flowhistory/service/compression/codec"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/dao/graph/memory"
	"github.com/viant/flowhistory/service/optimizer"
)

type failingCodec struct{ codec.Codec }

func (f *failingCodec) Compress(string) (string, error) {
	return "", errors.New("disk full")
}

func canvas(count int) *flow.State {
	var nodes []*flow.Node
	for i := 0; i < count; i++ {
		nodes = append(nodes, &flow.Node{
			ID:       fmt.Sprintf("n%d", i),
			Position: flow.Position{X: float64(i), Y: float64(i)},
			Data:     map[string]interface{}{"label": fmt.Sprintf("Step %d", i)},
			Selected: true,
		})
	}
	return flow.NewState(nodes, nil)
}

// branching builds root -> A -> B with a sibling C of B.
func branching(t *testing.T) *history.Graph {
	t.Helper()
	g := history.New(canvas(0))
	_, err := g.Append("A", g.Current().After, canvas(1), nil)
	require.NoError(t, err)
	_, err = g.Append("B", g.Current().After, canvas(2), map[string]interface{}{"source": "test"})
	require.NoError(t, err)
	g.Undo()
	_, err = g.Append("C", g.Current().After, canvas(3), nil)
	require.NoError(t, err)
	return g
}

func encode(t *testing.T, g *history.Graph) string {
	data, err := json.Marshal(g)
	require.NoError(t, err)
	return string(data)
}

func newCompressor(t *testing.T, options ...compression.Option) *compression.Service {
	srv, err := compression.New(options...)
	require.NoError(t, err)
	t.Cleanup(srv.Terminate)
	return srv
}

func TestService_SaveLoad(t *testing.T) {
	var testCases = []struct {
		description string
		limit       int
		encoding    string
	}{
		{description: "small graph stays json", limit: optimizer.UseDefaultLimit, encoding: dao.EncodingJSON},
		{description: "zero limit always compresses", limit: 0, encoding: dao.EncodingCompressed},
		{description: "large graph is compressed", limit: 64, encoding: dao.EncodingCompressed},
	}

	for _, testCase := range testCases {
		collector := metrics.NewCollector("test")
		store := memory.New()
		srv := New(store, WithCompressor(newCompressor(t)), WithLimit(testCase.limit), WithMetrics(collector))
		g := branching(t)

		record, err := srv.Save(context.Background(), "flow-1", g)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.encoding, record.Encoding, testCase.description)
		assert.Equal(t, g.Cursor, record.Cursor, testCase.description)
		if testCase.encoding == dao.EncodingCompressed {
			assert.Equal(t, codec.NameZstd, record.Codec, testCase.description)
		}

		restored, err := srv.Load(context.Background(), "flow-1")
		require.NoError(t, err, testCase.description)
		assert.Equal(t, encode(t, g), encode(t, restored), testCase.description)
		assert.Equal(t, g.Cursor, restored.Cursor, testCase.description)
	}
}

func TestService_CompressionFailureFallsBack(t *testing.T) {
	zstd, err := codec.NewZstd()
	require.NoError(t, err)
	store := memory.New()
	srv := New(store, WithCompressor(newCompressor(t, compression.WithCodec(&failingCodec{Codec: zstd}))), WithLimit(1))

	record, err := srv.Save(context.Background(), "flow-1", branching(t))
	require.NoError(t, err)
	assert.Equal(t, dao.EncodingJSON, record.Encoding)
	assert.Empty(t, record.Codec)

	_, err = srv.Load(context.Background(), "flow-1")
	require.NoError(t, err)
}

func TestService_LoadCompressedWithoutCompressor(t *testing.T) {
	store := memory.New()
	writer := New(store, WithCompressor(newCompressor(t, compression.WithConfig(compression.Config{Codec: codec.NameGzip}))), WithLimit(1))
	g := branching(t)
	record, err := writer.Save(context.Background(), "flow-1", g)
	require.NoError(t, err)
	require.Equal(t, codec.NameGzip, record.Codec)

	reader := New(store)
	restored, err := reader.Load(context.Background(), "flow-1")
	require.NoError(t, err)
	assert.Equal(t, encode(t, g), encode(t, restored))

	gz, err := reader.codecs.Get(codec.NameGzip)
	require.NoError(t, err)
	_, err = reader.Load(context.Background(), "flow-1")
	require.NoError(t, err)
	again, err := reader.codecs.Get(codec.NameGzip)
	require.NoError(t, err)
	assert.Same(t, gz, again, "codec is created once per name")

	require.NoError(t, reader.Close())
	_, err = reader.Load(context.Background(), "flow-1")
	assert.ErrorIs(t, err, codec.ErrClosed)
	assert.NotErrorIs(t, err, ErrCorrupted)
}

func TestService_LoadCursorFallback(t *testing.T) {
	store := memory.New()
	srv := New(store)
	g := branching(t)
	_, err := srv.Save(context.Background(), "flow-1", g)
	require.NoError(t, err)

	record, err := store.Load(context.Background(), "flow-1")
	require.NoError(t, err)
	record.Cursor = "gone"
	require.NoError(t, store.Save(context.Background(), record))

	restored, err := srv.Load(context.Background(), "flow-1")
	require.NoError(t, err)
	assert.Equal(t, restored.Root, restored.Cursor)
}

func TestService_LoadAppliesRedoStrategy(t *testing.T) {
	store := memory.New()
	srv := New(store, WithRedoStrategy(history.FirstChild))
	g := branching(t)
	g.Undo()
	_, err := srv.Save(context.Background(), "flow-1", g)
	require.NoError(t, err)

	restored, err := srv.Load(context.Background(), "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "B", restored.Redo().Label)
}

func TestService_OptimizerPolicy(t *testing.T) {
	store := memory.New()
	opt := optimizer.New(optimizer.WithPolicy(&policy.Policy{StripNodeFields: []string{policy.FieldSelected}}))
	srv := New(store, WithOptimizer(opt))
	g := branching(t)
	_, err := srv.Save(context.Background(), "flow-1", g)
	require.NoError(t, err)

	restored, err := srv.Load(context.Background(), "flow-1")
	require.NoError(t, err)
	for _, node := range restored.Nodes {
		for _, n := range node.After.Nodes {
			assert.False(t, n.Selected)
		}
	}
	assert.True(t, g.Current().After.Nodes[0].Selected, "live graph must keep transient fields")
}

func TestService_Errors(t *testing.T) {
	store := memory.New()
	srv := New(store)
	ctx := context.Background()

	_, err := srv.Save(ctx, "", branching(t))
	assert.ErrorIs(t, err, dao.ErrInvalidID)
	_, err = srv.Save(ctx, "flow-1", nil)
	assert.ErrorIs(t, err, dao.ErrNilEntity)

	_, err = srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	require.NoError(t, store.Save(ctx, &dao.Record{FlowID: "broken", Encoding: dao.EncodingJSON, Payload: "{not json"}))
	_, err = srv.Load(ctx, "broken")
	assert.ErrorIs(t, err, ErrCorrupted)

	require.NoError(t, store.Save(ctx, &dao.Record{FlowID: "orphan", Encoding: dao.EncodingJSON, Payload: `{"nodes":{},"cursor":"x","root":"x"}`}))
	_, err = srv.Load(ctx, "orphan")
	assert.ErrorIs(t, err, ErrCorrupted)
	assert.ErrorIs(t, err, history.ErrInvalidGraph)

	require.NoError(t, store.Save(ctx, &dao.Record{FlowID: "odd", Encoding: "xml", Payload: "<x/>"}))
	_, err = srv.Load(ctx, "odd")
	assert.ErrorIs(t, err, ErrCorrupted)

	require.NoError(t, store.Save(ctx, &dao.Record{FlowID: "lz4", Encoding: dao.EncodingCompressed, Codec: "lz4", Payload: "AAAA"}))
	_, err = srv.Load(ctx, "lz4")
	assert.ErrorIs(t, err, ErrCorrupted)
	assert.ErrorIs(t, err, codec.ErrUnknownCodec)

	_, err = srv.Save(ctx, "../escaped", branching(t))
	assert.ErrorIs(t, err, dao.ErrInvalidID)

	require.NoError(t, srv.Delete(ctx, "odd"))
	records, err := srv.List(ctx, dao.NewParameter(dao.ParameterEncoding, dao.EncodingJSON))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
