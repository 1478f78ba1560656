package main

import (
	"context"
	"testing"

	"bridgeforum/internal/cache"
	"bridgeforum/internal/config"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoteEvictsCachedUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	admin := testutil.CreateUser(t, db, "profe", "profe@example.com", true)

	mr := miniredis.RunT(t)
	server := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = server.Close() })
	cache.SetClient(server)
	t.Cleanup(func() { cache.SetClient(nil) })

	users := repository.NewUserRepository(db)
	cached, err := users.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.True(t, cached.IsAdmin)
	require.True(t, mr.Exists(cache.UserKey(admin.ID)))

	closeCache := connectCache(&config.Config{RedisURL: mr.Addr()})
	require.NotNil(t, cache.GetClient())
	require.NoError(t, setAdmin(ctx, users, "PROFE@example.com", false))
	assert.False(t, mr.Exists(cache.UserKey(admin.ID)), "demote evicts the cached user")
	closeCache()
	assert.Nil(t, cache.GetClient())

	cache.SetClient(server)
	reloaded, err := users.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAdmin)
}

func TestSetAdmin_UnknownEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := setAdmin(context.Background(), repository.NewUserRepository(db), "nadie@example.com", true)
	assert.ErrorContains(t, err, "not found")
}
