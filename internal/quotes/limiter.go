package quotes

import (
	"sync"
	"time"
)

// MinRequestInterval is the minimum time between upstream requests for the
// same symbol.
const MinRequestInterval = 12 * time.Second

// RateLimiter gates upstream quote calls per symbol. A request is allowed
// when no prior request was recorded for the symbol or the minimum interval
// has elapsed; denied requests do not update the last-request time.
type RateLimiter struct {
	mu          sync.Mutex
	lastRequest map[string]time.Time
	interval    time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a RateLimiter with the default minimum interval.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		lastRequest: make(map[string]time.Time),
		interval:    MinRequestInterval,
		now:         time.Now,
	}
}

// ShouldAllowRequest reports whether a live request for symbol may proceed,
// recording the request time when it does.
func (r *RateLimiter) ShouldAllowRequest(symbol string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.now()
	last, ok := r.lastRequest[symbol]
	if !ok || current.Sub(last) >= r.interval {
		r.lastRequest[symbol] = current
		return true
	}
	return false
}
