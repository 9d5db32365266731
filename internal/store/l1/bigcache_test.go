package l1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gh-repo-cache/internal/models"
)

func newTestStore(t *testing.T) *BigCacheStore {
	t.Helper()
	store, err := New(Config{SizeMB: 8}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestBigCacheStore_PutAndGet(t *testing.T) {
	store := newTestStore(t)

	store.Put("repo:octo/hello:anon:repos.get:", []byte("payload"), models.TTLClassLong, false, time.Hour)

	entry, found := store.Get("repo:octo/hello:anon:repos.get:")
	require.True(t, found)
	assert.Equal(t, []byte("payload"), entry.Data)
	assert.Equal(t, models.TTLClassLong, entry.Class)
	assert.False(t, entry.Negative)
	assert.InDelta(t, time.Now().Unix(), entry.CreatedAt, 2)
}

func TestBigCacheStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	entry, found := store.Get("missing")
	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestBigCacheStore_Put_Overwrites(t *testing.T) {
	store := newTestStore(t)

	store.Put("key", []byte("v1"), models.TTLClassShort, false, time.Hour)
	store.Put("key", []byte("v2"), models.TTLClassShort, false, time.Hour)

	entry, found := store.Get("key")
	require.True(t, found)
	assert.Equal(t, []byte("v2"), entry.Data)
}

func TestBigCacheStore_NegativeEntry(t *testing.T) {
	store := newTestStore(t)

	store.Put("key", nil, models.TTLClassShort, true, time.Hour)

	entry, found := store.Get("key")
	require.True(t, found)
	assert.True(t, entry.Negative)
	assert.Empty(t, entry.Data)
}

func TestBigCacheStore_Get_DropsExpired(t *testing.T) {
	store := newTestStore(t)

	// Write an already-expired entry directly into the backing cache.
	now := time.Now()
	entry := models.CacheEntry{
		Data:      []byte("old"),
		Class:     models.TTLClassShort,
		CreatedAt: now.Add(-2 * time.Hour).Unix(),
		ExpiresAt: now.Add(-time.Hour).Unix(),
	}
	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, store.cache.Set("key", raw))

	got, found := store.Get("key")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestBigCacheStore_Invalidate(t *testing.T) {
	store := newTestStore(t)

	store.Put("key", []byte("payload"), models.TTLClassShort, false, time.Hour)
	store.Invalidate("key")

	_, found := store.Get("key")
	assert.False(t, found)
}

func TestBigCacheStore_InvalidatePrefix(t *testing.T) {
	store := newTestStore(t)

	store.Put("repo:octo/hello:a:issues.list:", []byte("issues"), models.TTLClassShort, false, time.Hour)
	store.Put("repo:octo/hello:a:pulls.list:", []byte("pulls"), models.TTLClassShort, false, time.Hour)
	store.Put("repo:octo/hello2:a:issues.list:", []byte("other"), models.TTLClassShort, false, time.Hour)

	store.InvalidatePrefix("repo:octo/hello:")

	_, found := store.Get("repo:octo/hello:a:issues.list:")
	assert.False(t, found)
	_, found = store.Get("repo:octo/hello:a:pulls.list:")
	assert.False(t, found)

	// The similarly named repository is untouched.
	_, found = store.Get("repo:octo/hello2:a:issues.list:")
	assert.True(t, found)
}

func TestBigCacheStore_Sweep(t *testing.T) {
	store := newTestStore(t)

	store.Put("live", []byte("payload"), models.TTLClassShort, false, time.Hour)

	now := time.Now()
	expired := models.CacheEntry{
		Data:      []byte("old"),
		Class:     models.TTLClassShort,
		CreatedAt: now.Add(-2 * time.Hour).Unix(),
		ExpiresAt: now.Add(-time.Hour).Unix(),
	}
	raw, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, store.cache.Set("dead", raw))

	removed := store.Sweep(now)
	assert.Equal(t, 1, removed)

	_, found := store.Get("live")
	assert.True(t, found)
	_, found = store.Get("dead")
	assert.False(t, found)
}
