package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
		delete(f.ttls, k)
	}
	return nil
}

func (f *fakeStore) AccessSessionKey(accessID string) string {
	return "test:sessions:" + accessID
}

func newTestManager(store *fakeStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestManagerOpenAndHasSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	mgr := newTestManager(store)

	accessID := NewAccessID()
	require.NoError(t, mgr.Open(ctx, accessID))

	ok, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, store.ttls[store.AccessSessionKey(accessID)])
}

func TestManagerHasSessionMissing(t *testing.T) {
	ctx := context.Background()
	mgr := newTestManager(newFakeStore())

	ok, err := mgr.HasSession(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = mgr.HasSession(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerRevoke(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	mgr := newTestManager(store)

	accessID := NewAccessID()
	require.NoError(t, mgr.Open(ctx, accessID))
	require.NoError(t, mgr.Revoke(ctx, accessID))

	ok, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, mgr.Revoke(ctx, " "))
}

func TestManagerOpenRequiresAccessID(t *testing.T) {
	mgr := newTestManager(newFakeStore())
	assert.Error(t, mgr.Open(context.Background(), ""))
}
