package middleware

import (
	"net/http"
	"time"

	"github.com/okian/taxifare/pkg/logger"
)

// Logging writes one debug line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)
		next.ServeHTTP(rw, r)
		logger.Get().Named("http").Debug(r.Context(), "request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rw.statusCode),
			logger.Duration("took", time.Since(start)),
			logger.String("request_id", RequestIDFrom(r.Context())),
		)
	})
}
