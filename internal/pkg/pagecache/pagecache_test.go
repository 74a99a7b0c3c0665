package pagecache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "/api/v1/posts", Key("/api/v1/posts", ""))
	assert.Equal(t, "/api/v1/posts?page=2", Key("/api/v1/posts", "page=2"))
}

func TestGetMissingKey(t *testing.T) {
	cache := New(time.Second)

	_, ok := cache.Get("/posts")
	assert.False(t, ok)
}

func TestSetAndGetWithinTTL(t *testing.T) {
	now := time.Now()
	cache := NewWithClock(20*time.Second, func() time.Time { return now })

	stored := CachedResponse{Status: 200, ContentType: "application/json", Body: []byte(`{"posts":[]}`)}
	cache.Set("/posts", stored)

	got, ok := cache.Get("/posts")
	require.True(t, ok)
	assert.Equal(t, stored, got)
}

// A hit inside the TTL window replays the stored bytes even though the data
// underneath changed; Set is never called on the read path.
func TestStalenessWindow(t *testing.T) {
	now := time.Now()
	cache := NewWithClock(20*time.Second, func() time.Time { return now })

	cache.Set("/posts", CachedResponse{Status: 200, Body: []byte("one post")})

	now = now.Add(19 * time.Second)
	got, ok := cache.Get("/posts")
	require.True(t, ok)
	assert.Equal(t, []byte("one post"), got.Body)
}

func TestExpiryEvicts(t *testing.T) {
	now := time.Now()
	cache := NewWithClock(20*time.Second, func() time.Time { return now })

	cache.Set("/posts", CachedResponse{Status: 200, Body: []byte("one post")})

	now = now.Add(20 * time.Second)
	_, ok := cache.Get("/posts")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestClearBypassesTTL(t *testing.T) {
	now := time.Now()
	cache := NewWithClock(20*time.Second, func() time.Time { return now })

	cache.Set("/posts", CachedResponse{Status: 200, Body: []byte("one post")})
	cache.Set("/posts?page=2", CachedResponse{Status: 200, Body: []byte("two post")})
	require.Equal(t, 2, cache.Len())

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("/posts")
	assert.False(t, ok)
}

func TestDistinctQueriesCacheSeparately(t *testing.T) {
	cache := New(time.Minute)

	cache.Set(Key("/posts", ""), CachedResponse{Status: 200, Body: []byte("page one")})
	cache.Set(Key("/posts", "page=2"), CachedResponse{Status: 200, Body: []byte("page two")})

	first, ok := cache.Get("/posts")
	require.True(t, ok)
	second, ok := cache.Get("/posts?page=2")
	require.True(t, ok)

	assert.NotEqual(t, first.Body, second.Body)
}

func TestNonPositiveTTLFallsBack(t *testing.T) {
	cache := New(0)
	assert.Equal(t, DefaultTTL, cache.TTL())
}

func TestSetRefreshesExpiry(t *testing.T) {
	now := time.Now()
	cache := NewWithClock(20*time.Second, func() time.Time { return now })

	cache.Set("/posts", CachedResponse{Status: 200, Body: []byte("old")})
	now = now.Add(15 * time.Second)
	cache.Set("/posts", CachedResponse{Status: 200, Body: []byte("new")})

	now = now.Add(10 * time.Second)
	got, ok := cache.Get("/posts")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got.Body)
}
