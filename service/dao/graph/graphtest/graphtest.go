// Package graphtest holds the behaviour every record backend must share.
package graphtest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowhistory/service/dao"
)

// Run exercises srv against the dao.Service contract.
func Run(t *testing.T, srv dao.Service[string, dao.Record]) {
	t.Helper()
	ctx := context.Background()
	savedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	records := []*dao.Record{
		{FlowID: "flow-a", Encoding: dao.EncodingJSON, Payload: `{"root":"r"}`, Size: 12, Cursor: "r", SavedAt: savedAt},
		{FlowID: "flow-b", Encoding: dao.EncodingCompressed, Codec: "zstd", Payload: "KLUv/QBYAQAA", Size: 2048, Cursor: "c", SavedAt: savedAt},
	}
	for _, record := range records {
		require.NoError(t, srv.Save(ctx, record))
	}

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &dao.Record{}), dao.ErrInvalidID)
	for _, id := range []string{"../escaped", "nested/flow", `dir\flow`, ".."} {
		assert.ErrorIs(t, srv.Save(ctx, &dao.Record{FlowID: id, Encoding: dao.EncodingJSON}), dao.ErrInvalidID, id)
	}

	loaded, err := srv.Load(ctx, "flow-b")
	require.NoError(t, err)
	assert.Equal(t, records[1].Payload, loaded.Payload)
	assert.Equal(t, records[1].Codec, loaded.Codec)
	assert.Equal(t, records[1].Cursor, loaded.Cursor)
	assert.True(t, records[1].SavedAt.Equal(loaded.SavedAt))

	loaded.Payload = "mutated"
	again, err := srv.Load(ctx, "flow-b")
	require.NoError(t, err)
	assert.Equal(t, records[1].Payload, again.Payload)

	_, err = srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	updated := records[0].Clone()
	updated.Cursor = "a"
	require.NoError(t, srv.Save(ctx, updated))
	loaded, err = srv.Load(ctx, "flow-a")
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.Cursor)

	all, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"flow-a", "flow-b"}, ids(all))

	compressed, err := srv.List(ctx, dao.NewParameter(dao.ParameterEncoding, dao.EncodingCompressed))
	require.NoError(t, err)
	assert.Equal(t, []string{"flow-b"}, ids(compressed))

	require.NoError(t, srv.Delete(ctx, "flow-a"))
	assert.ErrorIs(t, srv.Delete(ctx, "flow-a"), dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, ""), dao.ErrInvalidID)
	_, err = srv.Load(ctx, "flow-a")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func ids(records []*dao.Record) []string {
	var ret []string
	for _, record := range records {
		ret = append(ret, record.FlowID)
	}
	sort.Strings(ret)
	return ret
}
