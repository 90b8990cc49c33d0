package middleware

import (
	"net/http"

	"github.com/amaumene/movieshelf/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests above rps (with the given burst) with 429
func RateLimit(next http.Handler, rps float64, burst int, logger *logrus.Logger) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			metrics.HTTPRateLimitedTotal.Inc()
			logger.WithFields(logrus.Fields{
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			}).Warn("Rate limit exceeded")

			w.Header().Set("Retry-After", "1")
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
