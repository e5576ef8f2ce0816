package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/cache"
)

type item struct {
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute), mr
}

func TestFetchJSON_SegundaLecturaDesdeCache(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []item{{Name: "Peinture acrylique"}}, nil
	}

	key, err := c.BuildKey(ctx, "catalog", "paints")
	require.NoError(t, err)

	var first, second []item
	require.NoError(t, c.FetchJSON(ctx, key, &first, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &second, loader))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestBump_InvalidaClaves(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before, err := c.BuildKey(ctx, "catalog", "extras")
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	after, err := c.BuildKey(ctx, "catalog", "extras")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestFetchJSON_ErrorDelLoaderNoSeCachea(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	boom := errors.New("db caída")

	var out []item
	err := c.FetchJSON(ctx, "k", &out, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestCacheNil_DelegaEnLoader(t *testing.T) {
	var c *cache.Cache
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "catalog", "paints")
	require.NoError(t, err)
	assert.Equal(t, "catalog:paints", key)

	var out []item
	require.NoError(t, c.FetchJSON(ctx, key, &out, func(context.Context) (any, error) {
		return []item{{Name: "x"}}, nil
	}))
	assert.Len(t, out, 1)
	assert.NoError(t, c.Bump(ctx))
	assert.NoError(t, c.Close())
}
