package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisSessions(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSessionStore(rdb, ttl), mr
}

func TestSessionStoreLifecycle(t *testing.T) {
	store, mr := newRedisSessions(t, time.Hour)
	ctx := context.Background()

	sid, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	assert.True(t, mr.Exists("session:"+sid))
	assert.Equal(t, time.Hour, mr.TTL("session:"+sid))

	uid, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)

	require.NoError(t, store.Delete(ctx, sid))
	uid, err = store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, uid)
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newRedisSessions(t, time.Minute)
	ctx := context.Background()

	sid, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	uid, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, uid)
}

func TestSessionStoreDefaultsAndEmptyIDs(t *testing.T) {
	store, _ := newRedisSessions(t, 0)
	assert.Equal(t, DefaultSessionTTL, store.TTL())

	uid, err := store.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, uid)
	require.NoError(t, store.Delete(context.Background(), ""))
}

func TestSessionStoreUnreachable(t *testing.T) {
	store, mr := newRedisSessions(t, time.Minute)
	mr.Close()
	_, err := store.Create(context.Background(), "user-1")
	assert.Error(t, err)
}
