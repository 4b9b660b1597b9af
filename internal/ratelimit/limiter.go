package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether another attempt from key is allowed right now.
// Enforcement is approximate under concurrency (at-least-N, not
// exactly-N), which is acceptable for login throttling.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type record struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a fixed-window in-process limiter. It is suitable for
// a single instance only; multi-instance deployments need the Redis
// limiter so the window is shared.
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string]*record
	max      int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		attempts: make(map[string]*record),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	rec, ok := l.attempts[key]
	if !ok || now.After(rec.resetTime) {
		l.attempts[key] = &record{count: 1, resetTime: now.Add(l.window)}
		return true, nil
	}

	if rec.count >= l.max {
		return false, nil
	}
	rec.count++
	return true, nil
}

// evict drops expired windows so the map stays bounded.
func (l *MemoryLimiter) evict(now time.Time) {
	for key, rec := range l.attempts {
		if now.After(rec.resetTime) {
			delete(l.attempts, key)
		}
	}
}
