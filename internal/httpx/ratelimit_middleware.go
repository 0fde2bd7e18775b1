package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type rateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP.
type RateLimitMiddleware struct {
	limiters map[string]*rateLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cleanup  time.Duration
	message  string
	// skipSuccessful charges only responses with status >= 400.
	skipSuccessful bool
}

// NewRateLimitMiddleware allows max requests per window per client: the
// bucket holds max tokens and refills at max/window.
func NewRateLimitMiddleware(max int, window time.Duration, message string) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters: make(map[string]*rateLimiter),
		rate:     rate.Limit(float64(max) / window.Seconds()),
		burst:    max,
		cleanup:  window,
		message:  message,
	}
	if rl.cleanup < 5*time.Minute {
		rl.cleanup = 5 * time.Minute
	}

	go rl.cleanupLimiters()
	return rl
}

func (rl *RateLimitMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if time.Since(limiter.lastSeen) > rl.cleanup {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimitMiddleware) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = &rateLimiter{
			limiter:  rate.NewLimiter(rl.rate, rl.burst),
			lastSeen: time.Now(),
		}
		rl.limiters[key] = limiter
	} else {
		limiter.lastSeen = time.Now()
	}

	return limiter.limiter
}

// SkipSuccessful makes the limiter count failed requests only, so a client
// is throttled after max failures per window however often it succeeds.
func (rl *RateLimitMiddleware) SkipSuccessful() *RateLimitMiddleware {
	rl.skipSuccessful = true
	return rl
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.getLimiter(ClientIP(r))
		if rl.skipSuccessful {
			rl.serveChargingFailures(limiter, next, w, r)
			return
		}

		reservation := limiter.Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			rl.reject(w, r, delay)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// serveChargingFailures admits the request while a token is available and
// spends it only if the response fails.
func (rl *RateLimitMiddleware) serveChargingFailures(limiter *rate.Limiter, next http.Handler, w http.ResponseWriter, r *http.Request) {
	if limiter.Tokens() < 1 {
		// A future reservation can be cancelled, so this only measures the wait.
		reservation := limiter.Reserve()
		delay := reservation.Delay()
		reservation.Cancel()
		rl.reject(w, r, delay)
		return
	}

	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	next.ServeHTTP(rw, r)
	if rw.statusCode >= http.StatusBadRequest {
		limiter.Allow()
	}
}

func (rl *RateLimitMiddleware) reject(w http.ResponseWriter, r *http.Request, delay time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
	JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", rl.message, nil)
}

// Wrap is Middleware for a HandlerFunc.
func (rl *RateLimitMiddleware) Wrap(next http.HandlerFunc) http.Handler {
	return rl.Middleware(next)
}

// ClientIP prefers the first X-Forwarded-For hop and falls back to the
// connection's remote host.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
