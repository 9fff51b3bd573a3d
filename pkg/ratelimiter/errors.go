package ratelimiter

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrContextCancelled = errors.New("context cancelled")
)
