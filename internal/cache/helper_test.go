package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside_MissThenHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Username = "bob"
			return nil
		}
	}

	var u cachedUser
	err := Aside(ctx, UserKey(1), &u, UserTTL, fetch(&u))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "bob", u.Username)

	var u2 cachedUser
	err = Aside(ctx, UserKey(1), &u2, UserTTL, fetch(&u2))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, "bob", u2.Username)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetchErr := errors.New("db down")
	var u cachedUser
	err := Aside(ctx, UserKey(2), &u, UserTTL, func() error { return fetchErr })
	assert.ErrorIs(t, err, fetchErr)

	found, err := GetJSON(ctx, UserKey(2), &u)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateUser(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3, Username: "jane"}, UserTTL))
	InvalidateUser(ctx, 3)

	var u cachedUser
	found, err := GetJSON(ctx, UserKey(3), &u)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)

	var u cachedUser
	err := Aside(context.Background(), UserKey(4), &u, UserTTL, func() error {
		u.ID = 4
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(4), u.ID)
}
