package service

import (
	"context"
	"testing"
	"time"

	"go-medical-appointment/internal/testutil"
	"go-medical-appointment/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenStore(t *testing.T) (*RedisTokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisTokenStore(client, testutil.NewLogger()), mr
}

func TestTokenKey(t *testing.T) {
	userID := uuid.MustParse("7f1c2a52-8a3b-4c1e-9d6f-0a1b2c3d4e5f")
	assert.Equal(t, "access_token:7f1c2a52-8a3b-4c1e-9d6f-0a1b2c3d4e5f:abc", TokenKey(jwt.AccessToken, userID, "abc"))
	assert.Equal(t, "refresh_token:7f1c2a52-8a3b-4c1e-9d6f-0a1b2c3d4e5f:abc", TokenKey(jwt.RefreshToken, userID, "abc"))
}

func TestRedisTokenStore_StoreExistsRevoke(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", 2*time.Hour, "r1", 24*time.Hour))

	ok, err := store.Exists(ctx, jwt.AccessToken, userID, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, jwt.RefreshToken, userID, "r1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 2*time.Hour, mr.TTL(TokenKey(jwt.AccessToken, userID, "a1")))

	require.NoError(t, store.Revoke(ctx, jwt.AccessToken, userID, "a1"))
	ok, err = store.Exists(ctx, jwt.AccessToken, userID, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(25 * time.Hour)
	ok, err = store.Exists(ctx, jwt.RefreshToken, userID, "r1")
	require.NoError(t, err)
	assert.False(t, ok, "tokens expire with their ttl")
}

func TestRedisTokenStore_RevokeAll(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Hour, "r1", time.Hour))
	require.NoError(t, store.StorePair(ctx, userID, "a2", time.Hour, "r2", time.Hour))
	require.NoError(t, store.StorePair(ctx, other, "a3", time.Hour, "r3", time.Hour))

	require.NoError(t, store.RevokeAll(ctx, userID))

	for _, id := range []string{"a1", "a2"} {
		ok, err := store.Exists(ctx, jwt.AccessToken, userID, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	ok, err := store.Exists(ctx, jwt.RefreshToken, userID, "r2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, jwt.AccessToken, other, "a3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisTokenStore_Consume(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Hour, "r1", time.Hour))

	consumed, err := store.Consume(ctx, jwt.RefreshToken, userID, "r1")
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = store.Consume(ctx, jwt.RefreshToken, userID, "r1")
	require.NoError(t, err)
	assert.False(t, consumed, "a token id is consumed once")

	ok, err := store.Exists(ctx, jwt.AccessToken, userID, "a1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisTokenStore_Unavailable(t *testing.T) {
	store, mr := newTestTokenStore(t)
	mr.Close()

	_, err := store.Exists(context.Background(), jwt.AccessToken, uuid.New(), "a1")
	assert.Error(t, err)

	_, err = store.Consume(context.Background(), jwt.RefreshToken, uuid.New(), "r1")
	assert.Error(t, err)
}
