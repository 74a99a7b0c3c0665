package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/pkg/metrics"
	"github.com/emre/inkwell/internal/pkg/pagecache"
)

// cacheWriter tees the response body so a successful render can be stored
type cacheWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

// PageCache serves stored responses for GET requests on the wrapped route
// until they expire. Within the TTL a stored page is returned as-is, so new
// posts only become visible once the entry expires or the cache is cleared.
// Only successful responses are stored; query strings key separate entries.
func PageCache(cache *pagecache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := pagecache.Key(c.Request.URL.Path, c.Request.URL.RawQuery)

		if cached, ok := cache.Get(key); ok {
			metrics.PageCacheHitsTotal.Inc()
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}
		metrics.PageCacheMissesTotal.Inc()

		writer := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status == http.StatusOK {
			cache.Set(key, pagecache.CachedResponse{
				Status:      status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
		}
	}
}
