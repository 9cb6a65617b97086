package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:5", UserKey(5))
	assert.Equal(t, "tag:9", TagKey(9))
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			calls++
			*dest = cachedThing{ID: 1, Name: "alpha"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "alpha", first.Name)
	assert.True(t, mr.Exists("thing:1"))

	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "alpha", second.Name)
	assert.Equal(t, 1, calls)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	boom := errors.New("boom")

	var dest cachedThing
	err := Aside(context.Background(), "thing:2", &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("thing:2"))
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)

	var dest cachedThing
	err := Aside(context.Background(), "thing:3", &dest, time.Minute, func() error {
		dest.Name = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", dest.Name)
}

func TestAside_RedisDownStillServes(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()

	var dest cachedThing
	err := Aside(context.Background(), "thing:4", &dest, time.Minute, func() error {
		dest.Name = "db"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "db", dest.Name)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedThing{ID: 1}, time.Minute))
	require.NoError(t, SetJSON(ctx, TagKey(2), cachedThing{ID: 2}, time.Minute))

	Invalidate(ctx, UserKey(1), TagKey(2))
	assert.False(t, mr.Exists(UserKey(1)))
	assert.False(t, mr.Exists(TagKey(2)))
}

func TestInitRedis_Unreachable(t *testing.T) {
	t.Cleanup(func() { SetClient(nil) })
	InitRedis("redis://127.0.0.1:1/0")
	assert.Nil(t, GetClient())
}
