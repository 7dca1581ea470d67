package middleware

import (
	"net/http"

	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/oklog/ulid/v2"
)

const RequestIDHeader = "X-Request-Id"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = ulid.Make().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		logger.Info("http request", logger.Fields{
			"requestId": requestID,
			"method":    r.Method,
			"path":      r.URL.Path,
		})

		next.ServeHTTP(w, r)
	})
}
