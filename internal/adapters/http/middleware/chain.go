package middleware

import "net/http"

// Chain wraps h with the standard stack, outermost first: request id,
// metrics under endpoint, logging, recovery.
func Chain(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestID(Metrics(Logging(Recovery(h)), endpoint))
}
