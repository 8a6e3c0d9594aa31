package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewResponseCache(rdb, time.Minute, "test", zap.NewNop()), srv
}

func TestResponseCache_HitAfterMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/movies?page=1", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/movies?page=1", nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.Equal(t, `{"status":true}`, second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestResponseCache_QueryIsPartOfKey(t *testing.T) {
	cache, _ := newTestCache(t)

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(r.URL.RawQuery))
	}))

	for _, target := range []string{"/api/movies?page=1", "/api/movies?page=2"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, 2, calls)
}

func TestResponseCache_WriteInvalidates(t *testing.T) {
	cache, srv := newTestCache(t)

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			return
		}
		calls++
		_, _ = w.Write([]byte("list"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/movies", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies", nil))

	assert.Equal(t, 2, calls)
	gen, err := srv.Get("test:generation")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
}

func TestResponseCache_FailedWriteKeepsCache(t *testing.T) {
	cache, srv := newTestCache(t)

	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/movies", nil))

	assert.False(t, srv.Exists("test:generation"))
}

func TestResponseCache_SkipsErrorsAndNonAPI(t *testing.T) {
	cache, _ := newTestCache(t)

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/api/movies/9" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies/9", nil))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}

	assert.Equal(t, 4, calls)
}

func TestResponseCache_RedisDown(t *testing.T) {
	cache, srv := newTestCache(t)
	srv.Close()

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusOK, rec.Code)
}
