package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"movie-match/pkg/utils"
)

// RateLimit caps requests per client IP within the window.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		requests = 60
	}
	if window <= 0 {
		window = time.Minute
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseJSON(w, http.StatusTooManyRequests, false, "Too many requests", nil, nil)
		}),
	)
}
