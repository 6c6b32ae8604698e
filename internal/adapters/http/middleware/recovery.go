package middleware

import (
	"fmt"
	"net/http"

	"github.com/okian/taxifare/pkg/logger"
	"github.com/okian/taxifare/pkg/metrics"
)

// Recovery turns a handler panic into a 500 and logs it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			metrics.RecordErrorByType("panic", "critical")
			logger.Get().Named("http").Error(r.Context(), "handler panic",
				logger.String("path", r.URL.Path),
				logger.String("request_id", RequestIDFrom(r.Context())),
				logger.Error(fmt.Errorf("%v", rec)),
			)
			rw := wrap(w)
			if !rw.wroteHeader {
				http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
