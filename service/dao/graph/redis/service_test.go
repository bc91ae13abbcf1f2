package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/dao/graph/graphtest"
)

func setupTestRedis(t *testing.T, options ...Option) (*Service, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	srv, err := New(context.Background(), "redis://"+server.Addr(), options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv, server
}

func TestService(t *testing.T) {
	srv, _ := setupTestRedis(t)
	graphtest.Run(t, srv)
}

func TestService_PrefixAndTTL(t *testing.T) {
	srv, server := setupTestRedis(t, WithPrefix("editor:"), WithTTL(time.Minute))
	ctx := context.Background()
	require.NoError(t, srv.Save(ctx, &dao.Record{FlowID: "flow-1", Encoding: dao.EncodingJSON, Payload: "{}"}))

	assert.True(t, server.Exists("editor:flow-1"))
	assert.Equal(t, time.Minute, server.TTL("editor:flow-1"))

	server.FastForward(2 * time.Minute)
	_, err := srv.Load(ctx, "flow-1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), "::not a url")
	assert.Error(t, err)
}
