package httpserver

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimit bounds a route to rps requests per second (token bucket, burst
// of max(1, rps)). A non-positive rps disables limiting.
func rateLimit(rps float64) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	lim := rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
