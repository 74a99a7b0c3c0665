package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/inkwell/internal/pkg/pagecache"
)

func newCachedRouter(cache *pagecache.Cache) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	renders := 0
	router.GET("/posts", PageCache(cache), func(c *gin.Context) {
		renders++
		c.JSON(http.StatusOK, gin.H{"render": renders})
	})
	router.GET("/missing", PageCache(cache), func(c *gin.Context) {
		renders++
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router, &renders
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestPageCacheServesStoredResponseWithinTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := pagecache.NewWithClock(20*time.Second, func() time.Time { return now })
	router, renders := newCachedRouter(cache)

	first := get(router, "/posts")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, *renders)

	// Within the TTL the handler is not invoked again and the body repeats.
	now = now.Add(19 * time.Second)
	second := get(router, "/posts")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, *renders)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestPageCacheExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := pagecache.NewWithClock(20*time.Second, func() time.Time { return now })
	router, renders := newCachedRouter(cache)

	get(router, "/posts")
	require.Equal(t, 1, *renders)

	now = now.Add(20 * time.Second)
	fresh := get(router, "/posts")
	require.Equal(t, http.StatusOK, fresh.Code)
	assert.Equal(t, 2, *renders)
}

func TestPageCacheClearForcesRerender(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := pagecache.NewWithClock(20*time.Second, func() time.Time { return now })
	router, renders := newCachedRouter(cache)

	get(router, "/posts")
	cache.Clear()
	get(router, "/posts")
	assert.Equal(t, 2, *renders)
}

func TestPageCacheKeysIncludeQueryString(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := pagecache.NewWithClock(20*time.Second, func() time.Time { return now })
	router, renders := newCachedRouter(cache)

	for page := 1; page <= 3; page++ {
		get(router, fmt.Sprintf("/posts?page=%d", page))
	}
	assert.Equal(t, 3, *renders)

	// Repeating a page is served from the cache.
	get(router, "/posts?page=2")
	assert.Equal(t, 3, *renders)
}

func TestPageCacheSkipsFailedResponses(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := pagecache.NewWithClock(20*time.Second, func() time.Time { return now })
	router, renders := newCachedRouter(cache)

	get(router, "/missing")
	get(router, "/missing")
	assert.Equal(t, 2, *renders)
}
