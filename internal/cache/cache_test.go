package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "responses.db"), ttl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "alert", "9007199254740999")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	body := []byte(`{"diaSourceId": 9007199254740999}`)
	require.NoError(t, s.Put(ctx, "alert", "9007199254740999", body))

	got, ok, err := s.Get(ctx, "alert", "9007199254740999")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, body, got)

	// Same key under a different endpoint is a distinct entry.
	_, ok, err = s.Get(ctx, "ssobject", "9007199254740999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutReplacesExisting(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "nights", "list", []byte("old")))
	require.NoError(t, s.Put(ctx, "nights", "list", []byte("new")))

	got, ok, err := s.Get(ctx, "nights", "list")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestExpiryAndPrune(t *testing.T) {
	s := openTestStore(t, time.Minute)
	ctx := context.Background()

	current := time.Now()
	s.now = func() time.Time { return current }

	require.NoError(t, s.Put(ctx, "alert", "1", []byte("a")))
	require.NoError(t, s.Put(ctx, "alert", "2", []byte("b")))

	// Advance past the TTL: reads miss, prune drops both.
	current = current.Add(2 * time.Minute)

	_, ok, err := s.Get(ctx, "alert", "1")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must miss")

	n, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "entry 1 was already evicted by Get")
}
