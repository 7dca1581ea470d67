package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/go-redis/redis/v8"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	idempotencyCacheTTL = 24 * time.Hour
	lockTimeout         = 10 * time.Second
	redisKeyPrefix      = "idempotency:"
	lockKeyPrefix       = "lock:"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency caches the first successful response per Idempotency-Key and
// replays it for retries, so a retried transfer cannot post twice. Safe
// because a failed transfer leaves no partial state behind. A nil client
// disables the middleware.
func Idempotency(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			cacheKey := redisKeyPrefix + key
			lockKey := lockKeyPrefix + key

			cached, err := rdb.Get(ctx, cacheKey).Result()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				_, _ = w.Write([]byte(cached))
				return
			}

			acquired, err := rdb.SetNX(ctx, lockKey, "processing", lockTimeout).Result()
			if err != nil {
				logger.Error("idempotency middleware lock acquisition failed", err, logger.Fields{
					"path": r.URL.Path,
				})
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !acquired {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "conflict",
					"message": "A request with this idempotency key is currently being processed",
				})
				return
			}
			defer func() {
				if err := rdb.Del(ctx, lockKey).Err(); err != nil {
					logger.Error("idempotency middleware release lock failed", err, nil)
				}
			}()

			recorder := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			next.ServeHTTP(recorder, r)

			if recorder.statusCode >= 200 && recorder.statusCode < 300 {
				if err := rdb.Set(ctx, cacheKey, recorder.body.String(), idempotencyCacheTTL).Err(); err != nil {
					logger.Error("idempotency middleware cache response failed", err, logger.Fields{
						"path": r.URL.Path,
					})
				}
			}
		})
	}
}
