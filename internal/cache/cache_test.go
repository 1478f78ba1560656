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

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRememberWith_CachesLoaderResult(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (cachedUser, error) {
		calls++
		return cachedUser{ID: 7, Username: "ana"}, nil
	}

	first, err := RememberWith(ctx, rdb, UserKey(7), UserTTL, load)
	require.NoError(t, err)
	second, err := RememberWith(ctx, rdb, UserKey(7), UserTTL, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("user:7"))

	mr.FastForward(UserTTL + time.Second)
	_, err = RememberWith(ctx, rdb, UserKey(7), UserTTL, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRememberWith_LoaderErrorIsNotCached(t *testing.T) {
	mr, rdb := setupRedis(t)
	boom := errors.New("db down")

	_, err := RememberWith(context.Background(), rdb, UserKey(1), UserTTL, func(context.Context) (cachedUser, error) {
		return cachedUser{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("user:1"))
}

func TestRememberWith_NilClientCallsLoader(t *testing.T) {
	got, err := RememberWith(context.Background(), nil, "k", time.Minute, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestInvalidateUser(t *testing.T) {
	mr, rdb := setupRedis(t)
	SetClient(rdb)
	defer SetClient(nil)

	require.NoError(t, mr.Set("user:3", `{"id":3}`))
	InvalidateUser(context.Background(), 3)
	assert.False(t, mr.Exists("user:3"))
}

func TestSessionStorage(t *testing.T) {
	mr, rdb := setupRedis(t)
	store := NewSessionStorage(rdb)

	val, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("abc", []byte("payload"), time.Minute))
	assert.True(t, mr.Exists("session:abc"))

	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	mr.FastForward(2 * time.Minute)
	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val, "expired sessions disappear")

	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))
	require.NoError(t, mr.Set("user:1", "keep"))
	require.NoError(t, store.Delete("a"))
	assert.False(t, mr.Exists("session:a"))

	require.NoError(t, store.Reset())
	assert.False(t, mr.Exists("session:b"))
	assert.True(t, mr.Exists("user:1"), "reset only touches session keys")
	assert.NoError(t, store.Close())
}

func TestPrefixedStorage(t *testing.T) {
	mr, rdb := setupRedis(t)
	store := NewPrefixedStorage(rdb, LimiterKeyPrefix)

	require.NoError(t, store.Set("10.0.0.1", []byte("3"), time.Minute))
	assert.True(t, mr.Exists("limiter:10.0.0.1"))
	assert.False(t, mr.Exists("session:10.0.0.1"))
}

func TestInitRedis_Unreachable(t *testing.T) {
	InitRedis("127.0.0.1:1")
	assert.Nil(t, GetClient())

	InitRedis("")
	assert.Nil(t, GetClient())
}
