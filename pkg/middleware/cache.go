package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const CacheHeader = "X-Cache"

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ResponseCache stores successful GET responses in redis. Keys embed a
// generation counter; any successful write under the API prefix bumps it,
// which retires every cached page at once.
type ResponseCache struct {
	rdb       redis.Cmdable
	ttl       time.Duration
	prefix    string
	apiPrefix string
	log       *zap.Logger
}

func NewResponseCache(rdb redis.Cmdable, ttl time.Duration, prefix string, log *zap.Logger) *ResponseCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if prefix == "" {
		prefix = "cache"
	}
	return &ResponseCache{
		rdb:       rdb,
		ttl:       ttl,
		prefix:    prefix,
		apiPrefix: "/api/",
		log:       log.With(zap.String("middleware", "cache")),
	}
}

func (c *ResponseCache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *ResponseCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *ResponseCache) key(gen int64, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%d:%x", c.prefix, gen, sum)
}

// Invalidate retires every cached response.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.generationKey()).Err()
}

func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, c.apiPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodGet {
			c.serveWrite(next, w, r)
			return
		}

		ctx := r.Context()
		gen, err := c.generation(ctx)
		if err != nil {
			c.log.Warn("Cache unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		key := c.key(gen, r)
		if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				w.Header().Set("Content-Type", cached.ContentType)
				w.Header().Set(CacheHeader, "HIT")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			}
		}

		var (
			status = http.StatusOK
			body   bytes.Buffer
		)
		w.Header().Set(CacheHeader, "MISS")
		wrapped := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(code int) {
					status = code
					next(code)
				}
			},
			Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					body.Write(b)
					return next(b)
				}
			},
		})

		next.ServeHTTP(wrapped, r)

		if status != http.StatusOK {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := c.rdb.Set(context.WithoutCancel(ctx), key, payload, c.ttl).Err(); err != nil {
			c.log.Warn("Failed to store cached response", zap.Error(err), zap.String("path", r.URL.Path))
		}
	})
}

func (c *ResponseCache) serveWrite(next http.Handler, w http.ResponseWriter, r *http.Request) {
	metrics := httpsnoop.CaptureMetrics(next, w, r)
	if metrics.Code < 200 || metrics.Code >= 300 {
		return
	}

	if err := c.Invalidate(context.WithoutCancel(r.Context())); err != nil {
		c.log.Warn("Failed to invalidate response cache", zap.Error(err))
	}
}
