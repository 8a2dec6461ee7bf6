package httpapi

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// rateLimiter rejects requests once the shared token bucket is empty.
type rateLimiter struct {
	limiter *rate.Limiter
	onLimit func()
}

// newRateLimiter creates a limiter allowing rps sustained requests per
// second with a burst of twice that rate.
func newRateLimiter(rps float64, onLimit func()) *rateLimiter {
	burst := int(math.Ceil(rps * 2))
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		onLimit: onLimit,
	}
}

// middleware answers 429 with a Retry-After hint when the bucket is empty.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			if rl.onLimit != nil {
				rl.onLimit()
			}
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
			respondError(w, http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfter is the whole number of seconds until one token is available.
func (rl *rateLimiter) retryAfter() int {
	limit := float64(rl.limiter.Limit())
	if limit <= 0 {
		return 1
	}
	secs := int(math.Ceil(1 / limit))
	if secs < 1 {
		secs = 1
	}
	return secs
}
