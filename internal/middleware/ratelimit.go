package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// TokenBucket implements token bucket rate limiting
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     int
	refillRate int // tokens per minute
	lastRefill time.Time
	lastSeen   time.Time
}

func NewTokenBucket(capacity, refillRate int, now time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now,
		lastSeen:   now,
	}
}

func (tb *TokenBucket) Allow(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.lastSeen = now
	elapsed := now.Sub(tb.lastRefill).Minutes()
	if add := int(elapsed * float64(tb.refillRate)); add > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+add)
		// keep the unspent fraction of a token
		tb.lastRefill = tb.lastRefill.Add(time.Duration(add) * time.Minute / time.Duration(tb.refillRate))
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimiter keeps one bucket per client IP. It guards the endpoints that
// call paid upstream APIs.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*TokenBucket
	capacity   int
	refillRate int
	now        func() time.Time
}

func NewRateLimiter(capacity, perMinute int) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		capacity:   capacity,
		refillRate: perMinute,
		now:        time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = NewTokenBucket(rl.capacity, rl.refillRate, now)
		rl.buckets[key] = b
	}
	rl.mu.Unlock()
	return b.Allow(now)
}

// Sweep drops buckets idle for longer than idle. Runs until ctx is done.
func (rl *RateLimiter) Sweep(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		now := rl.now()
		rl.mu.Lock()
		for key, b := range rl.buckets {
			b.mu.Lock()
			if now.Sub(b.lastSeen) > idle {
				delete(rl.buckets, key)
			}
			b.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects over-limit clients with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			retry := 60
			if rl.refillRate > 0 {
				retry = max(1, 60/rl.refillRate)
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded, please try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
