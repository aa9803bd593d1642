package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID         string `json:"id"`
	Percentage int    `json:"percentage"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := New(context.Background(), WithAddress(mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx, WithAddress(addr), WithTimeouts(200*time.Millisecond, 200*time.Millisecond, 200*time.Millisecond))
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "grpc:latest_assessment:biz-1", payload{ID: "a-1", Percentage: 72}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "grpc:latest_assessment:biz-1", &got))
	assert.Equal(t, payload{ID: "a-1", Percentage: 72}, got)

	assert.Equal(t, time.Minute, mr.TTL("grpc:latest_assessment:biz-1"))
}

func TestCache_GetMissing(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	err := c.Get(context.Background(), "missing", &got)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{ID: "a"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "k", &got), redis.Nil)
}

func TestCache_Delete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", payload{ID: "a"}, time.Minute))
	require.NoError(t, c.Set(ctx, "b", payload{ID: "b"}, time.Minute))

	require.NoError(t, c.Delete(ctx, "a", "b", "never-set"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))

	assert.NoError(t, c.Delete(ctx))
}

func TestCache_Ping(t *testing.T) {
	c, mr := newTestCache(t)

	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestCache_GetCorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("corrupt", "{not json"))

	var got payload
	assert.Error(t, c.Get(context.Background(), "corrupt", &got))
}
