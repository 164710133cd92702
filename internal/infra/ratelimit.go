package infra

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by all requests to one upstream.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	interval   time.Duration // time to earn one token
	lastRefill time.Time
}

// NewRateLimiter allows up to perSecond requests per second with bursts of
// the same size. A non-positive rate disables limiting.
func NewRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		tokens:     burst,
		maxTokens:  burst,
		interval:   time.Duration(float64(time.Second) / perSecond),
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done. A nil limiter
// never blocks.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		wait := rl.interval - time.Since(rl.lastRefill)
		rl.mu.Unlock()

		if wait < time.Millisecond {
			wait = time.Millisecond
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refill adds the tokens earned since the last refill. Must be called with mu held.
func (rl *RateLimiter) refill() {
	elapsed := time.Since(rl.lastRefill)
	if elapsed < rl.interval {
		return
	}
	periods := int(elapsed / rl.interval)
	rl.tokens += periods
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = rl.lastRefill.Add(time.Duration(periods) * rl.interval)
}
