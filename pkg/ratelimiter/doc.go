// Package ratelimiter provides a token bucket used to keep outgoing email
// under a provider's sending quota.
//
// A Bucket starts full with Capacity tokens and regains RefillRate tokens every
// RefillInterval, never exceeding Capacity. Allow takes a token without
// blocking; Wait blocks until one is available or the context ends.
//
//	limiter := ratelimiter.MustNewBucket(ratelimiter.Config{
//		Capacity:       14,
//		RefillRate:     14,
//		RefillInterval: time.Second,
//	})
//
//	sender := email.NewThrottledSender(sesMailer, limiter)
//
// Config carries env tags so it can be loaded with config.Load:
//
//	EMAIL_RATE_CAPACITY=50
//	EMAIL_RATE_REFILL=50
//	EMAIL_RATE_INTERVAL=1s
package ratelimiter
