package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*PageCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewPageCache(client, "", ttl), srv
}

func TestPageCache_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, srv := newCache(t, 20*time.Second)

	_, ok, err := c.Get(ctx, "/")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "/", []byte("index")))
	require.True(t, srv.Exists(DefaultPrefix+"/"))

	got, ok, err := c.Get(ctx, "/")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("index"), got)

	srv.FastForward(21 * time.Second)

	_, ok, err = c.Get(ctx, "/")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPageCache_FlushKeepsForeignKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, srv := newCache(t, time.Minute)

	for i := 0; i < 250; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("/?page=%d", i), []byte("p")))
	}
	require.NoError(t, srv.Set("session:42", "keep"))

	require.NoError(t, c.Flush(ctx))

	require.Equal(t, []string{"session:42"}, srv.Keys())
}

func TestPageCache_Unavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, srv := newCache(t, time.Minute)
	srv.Close()

	_, _, err := c.Get(ctx, "/")
	require.Error(t, err)
	require.Error(t, c.Set(ctx, "/", []byte("x")))
	require.Error(t, c.Flush(ctx))
}
