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

func newTestCache(t *testing.T) *Versioned {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVersioned(client, "catalog", time.Minute)
}

func TestVersionedFetchCachesUntilBump(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []string{"P", "M"}, nil
	}

	var got []string
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "sizes"))
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "sizes"))
	assert.Equal(t, []string{"P", "M"}, got)
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Bump(ctx))
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "sizes"))
	assert.Equal(t, 2, calls)

	key, err := c.Key(ctx, "sizes")
	require.NoError(t, err)
	assert.Equal(t, "catalog:sizes:v2", key)
}

func TestVersionedWithoutClientPassesThrough(t *testing.T) {
	ctx := context.Background()
	c := NewVersioned(nil, "catalog", time.Minute)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"a": 1}, nil
	}
	var got map[string]int
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "x"))
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "x"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, got["a"])
	assert.NoError(t, c.Bump(ctx))
}

func TestVersionedFallsBackToLoaderWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		DialTimeout: 100 * time.Millisecond,
		ReadTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	c := NewVersioned(client, "catalog", time.Minute)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []string{"P"}, nil
	}
	var got []string
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "sizes"))
	assert.Equal(t, 1, calls)

	mr.Close()

	got = nil
	require.NoError(t, c.FetchJSON(ctx, &got, loader, "sizes"))
	assert.Equal(t, []string{"P"}, got)
	assert.Equal(t, 2, calls)
}

func TestVersionedNilReceiver(t *testing.T) {
	var c *Versioned
	key, err := c.Key(context.Background(), "sizes", "active")
	require.NoError(t, err)
	assert.Equal(t, "sizes:active", key)

	var got int
	require.NoError(t, c.FetchJSON(context.Background(), &got, func(context.Context) (any, error) { return 7, nil }, "n"))
	assert.Equal(t, 7, got)
}
