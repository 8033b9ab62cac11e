package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultMaxRequests = 20
	DefaultWindow      = 60 * time.Second
)

// Limiter throttles requests per identity over a sliding window.
// Implementations never return an error: on internal failure they fail
// open so a broken backend cannot take the chatbot down.
type Limiter interface {
	IsAllowed(ctx context.Context, identity string) bool
}

// MemoryLimiter keeps per-identity request instants in a go-cache table.
// The cache TTL doubles as lazy garbage collection: an identity silent for
// a full window simply falls out of the table, bounding memory growth
// without a dedicated sweep of our own.
type MemoryLimiter struct {
	mu          sync.Mutex
	records     *cache.Cache
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// Option configures a MemoryLimiter
type Option func(*MemoryLimiter)

// WithClock injects a clock for tests
func WithClock(now func() time.Time) Option {
	return func(l *MemoryLimiter) { l.now = now }
}

// NewMemoryLimiter creates a sliding-window limiter allowing maxRequests
// per window for each identity.
func NewMemoryLimiter(maxRequests int, window time.Duration, opts ...Option) *MemoryLimiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &MemoryLimiter{
		records:     cache.New(window, 2*window),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAllowed reports whether the identity may make a request now and, if so,
// records it. Instants older than the window are discarded first. A
// rejected attempt is NOT recorded, so a throttled client recovers as soon
// as the window slides past its accepted requests.
func (l *MemoryLimiter) IsAllowed(_ context.Context, identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	var instants []time.Time
	if x, found := l.records.Get(identity); found {
		for _, ts := range x.([]time.Time) {
			if ts.After(cutoff) {
				instants = append(instants, ts)
			}
		}
	}

	if len(instants) >= l.maxRequests {
		return false
	}

	instants = append(instants, now)
	l.records.Set(identity, instants, cache.DefaultExpiration)
	return true
}
