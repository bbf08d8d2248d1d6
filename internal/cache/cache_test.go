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

type cachedGroup struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		SetClient(nil)
		mr.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedGroup) func() error {
		return func() error {
			calls++
			*dest = cachedGroup{ID: 1, Title: "Cats"}
			return nil
		}
	}

	var first cachedGroup
	require.NoError(t, Aside(ctx, GroupKey("cats"), &first, GroupTTL, fetch(&first)))
	assert.Equal(t, "Cats", first.Title)
	assert.True(t, mr.Exists("group:cats"))

	var second cachedGroup
	require.NoError(t, Aside(ctx, GroupKey("cats"), &second, GroupTTL, fetch(&second)))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	InvalidateGroup(ctx, "cats")
	assert.False(t, mr.Exists("group:cats"))
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := setupMiniRedis(t)

	var dest cachedGroup
	err := Aside(context.Background(), GroupKey("missing"), &dest, GroupTTL, func() error {
		return errors.New("not found")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("group:missing"))
}

func TestAside_WithoutRedis(t *testing.T) {
	SetClient(nil)

	var dest cachedGroup
	err := Aside(context.Background(), GroupKey("cats"), &dest, GroupTTL, func() error {
		dest.Title = "Cats"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Cats", dest.Title)
}

func TestRevokeToken(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	revoked, err := IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, RevokeToken(ctx, "abc", time.Minute))
	revoked, err = IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInitRedis_Unreachable(t *testing.T) {
	assert.Nil(t, InitRedis("redis://:bad url"))
	assert.Nil(t, GetClient())
}
