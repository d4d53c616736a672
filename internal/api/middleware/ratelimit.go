package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter caps how fast a single caller can hit the relay.
// Every request here fans out to the upstream provider, which bills and
// throttles per API key, so the limit protects the shared key more than
// the server itself. In-memory only; a multi-instance deployment would
// need a shared store.
type RateLimiter struct {
	callers  map[string]*callerWindow
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type callerWindow struct {
	resetTime time.Time
	count     int
}

// NewRateLimiter creates a rate limiter allowing `requests` per caller
// per `window`.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		callers:  make(map[string]*callerWindow),
		requests: requests,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

// Middleware returns a rate limiting middleware keyed by client IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(callerID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()

	caller, exists := rl.callers[callerID]
	if !exists {
		rl.callers[callerID] = &callerWindow{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if now.After(caller.resetTime) {
		caller.count = 1
		caller.resetTime = now.Add(rl.window)
		return true
	}

	if caller.count < rl.requests {
		caller.count++
		return true
	}

	return false
}

// cleanup drops expired caller windows so the map doesn't grow without bound
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for callerID, caller := range rl.callers {
			if now.After(caller.resetTime) {
				delete(rl.callers, callerID)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP extracts the caller address, preferring proxy headers
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
