package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a keyed token bucket. A bucket is created lazily the first time
// its key is seen and refills continuously at refillPerSec, capped at
// capacity. Full buckets are swept periodically so a stream of one-off keys
// does not grow the map without bound.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

const sweepInterval = 10 * time.Minute

func New() *Limiter {
	return &Limiter{buckets: make(map[string]*bucket), swept: time.Now()}
}

// Allow consumes one token for key if available. capacity and refillPerSec
// are supplied per call so different key classes can share one limiter.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.swept) > sweepInterval {
		l.sweep(now, capacity, refillPerSec)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, last: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * refillPerSec
		if b.tokens > capacity {
			b.tokens = capacity
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Reset clears the bucket for key, typically after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// sweep drops buckets that have refilled to capacity; they behave exactly
// like absent ones. Caller holds the lock.
func (l *Limiter) sweep(now time.Time, capacity, refillPerSec float64) {
	for key, b := range l.buckets {
		if b.tokens+now.Sub(b.last).Seconds()*refillPerSec >= capacity {
			delete(l.buckets, key)
		}
	}
	l.swept = now
}
