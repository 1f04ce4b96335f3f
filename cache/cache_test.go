package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediTrack/database"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := database.RedisClient
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = database.RedisClient.Close()
		database.RedisClient = prev
	})

	c, err := NewCache()
	require.NoError(t, err)
	return c, mr
}

func TestCache_GetSetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	val, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	val, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	mr.FastForward(2 * time.Minute)
	val, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val, "expired")

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestCache_JSON(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type item struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var got item
	hit, err := c.GetJSON(ctx, "patient:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "patient:1", item{ID: 1, Name: "Amy"}, time.Minute))
	hit, err = c.GetJSON(ctx, "patient:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, item{ID: 1, Name: "Amy"}, got)
}

func TestNewCache_RequiresClient(t *testing.T) {
	prev := database.RedisClient
	database.RedisClient = nil
	defer func() { database.RedisClient = prev }()

	_, err := NewCache()
	assert.Error(t, err)
}
