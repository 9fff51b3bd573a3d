package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Config describes a token bucket. The defaults match the SES sandbox
// sending quota of 14 messages per second.
type Config struct {
	Capacity       int           `env:"EMAIL_RATE_CAPACITY" envDefault:"14"`
	RefillRate     int           `env:"EMAIL_RATE_REFILL" envDefault:"14"`
	RefillInterval time.Duration `env:"EMAIL_RATE_INTERVAL" envDefault:"1s"`
}

// Validate reports whether every field is positive.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be > 0, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be > 0, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the bucket state after an Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	allowed   bool
}

// Allowed reports whether the token was granted.
func (r Result) Allowed() bool { return r.allowed }

// RetryAfter returns how long to wait before the next token is available.
func (r Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Bucket is a single token bucket safe for concurrent use.
type Bucket struct {
	mu         sync.Mutex
	config     Config
	tokens     int
	lastRefill time.Time
}

// NewBucket returns a full bucket.
func NewBucket(config Config) (*Bucket, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{
		config:     config,
		tokens:     config.Capacity,
		lastRefill: time.Now(),
	}, nil
}

// MustNewBucket is like NewBucket but panics on invalid config.
func MustNewBucket(config Config) *Bucket {
	b, err := NewBucket(config)
	if err != nil {
		panic(err)
	}
	return b
}

// Allow takes one token if available. It never blocks.
func (b *Bucket) Allow() Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refill(now)

	res := Result{
		Limit:   b.config.Capacity,
		ResetAt: b.lastRefill.Add(b.config.RefillInterval),
	}
	if b.tokens > 0 {
		b.tokens--
		res.allowed = true
	}
	res.Remaining = b.tokens
	return res
}

// Wait blocks until a token is granted or ctx is done.
func (b *Bucket) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrContextCancelled, err)
		}

		res := b.Allow()
		if res.Allowed() {
			return nil
		}

		timer := time.NewTimer(res.RetryAfter())
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(ErrContextCancelled, ctx.Err())
		case <-timer.C:
		}
	}
}

// refill adds the tokens earned since lastRefill. Caller holds mu.
func (b *Bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	// Cap intervals to prevent integer overflow after long idle periods
	maxIntervals := int64(b.config.Capacity/b.config.RefillRate + 1)
	elapsedIntervals := int64(elapsed / b.config.RefillInterval)
	if elapsedIntervals <= 0 {
		return
	}
	if elapsedIntervals >= maxIntervals {
		b.tokens = b.config.Capacity
		b.lastRefill = now
		return
	}

	intervals := int(elapsedIntervals)
	b.tokens = min(b.tokens+intervals*b.config.RefillRate, b.config.Capacity)
	// Advance by whole intervals so the partial one keeps counting
	b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * b.config.RefillInterval)
}
