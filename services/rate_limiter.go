package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiter paces outbound calls to rate-limited partner APIs.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	sent   []time.Time
}

// NewRateLimiter allows at most limit calls per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		sent:   make([]time.Time, 0),
	}
}

// Wait blocks until a call can be made within the limit. The lock is
// never held while sleeping, so waiting callers do not serialize each
// other; after the sleep the window is re-checked.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		windowStart := now.Add(-r.window)

		// Drop calls that fell out of the window
		valid := r.sent[:0]
		for _, t := range r.sent {
			if t.After(windowStart) {
				valid = append(valid, t)
			}
		}
		r.sent = valid

		if len(r.sent) < r.limit {
			r.sent = append(r.sent, now)
			r.mu.Unlock()
			return nil
		}

		waitDuration := r.sent[0].Add(r.window).Sub(now)
		r.mu.Unlock()

		slog.Info("Outbound rate limit reached, waiting",
			"waitSeconds", waitDuration.Seconds(),
			"limit", r.limit,
		)

		select {
		case <-time.After(waitDuration):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
