package email

import (
	"context"
	"errors"
)

// Limiter blocks until the caller may send another message.
type Limiter interface {
	Wait(ctx context.Context) error
}

type throttledSender struct {
	next    Sender
	limiter Limiter
}

// NewThrottledSender wraps next so every Send first waits on limiter.
func NewThrottledSender(next Sender, limiter Limiter) Sender {
	return &throttledSender{next: next, limiter: limiter}
}

// Send waits for the limiter, then delegates to the wrapped sender.
// The wrapped sender's errors are returned as is.
func (s *throttledSender) Send(ctx context.Context, msg Outgoing) (*Result, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.Join(ErrFailedToSendEmail, err)
	}
	return s.next.Send(ctx, msg)
}
