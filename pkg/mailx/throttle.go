package mailx

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrThrottled reports a message dropped because the send quota for the
// current window is spent.
var ErrThrottled = errors.New("mailx: send quota exhausted")

// Throttled caps deliveries with a token bucket so a burst of
// registrations or reset requests cannot exceed the relay's send quota.
// Messages over the quota are rejected, never queued: callers are request
// handlers and must not wait for a slot.
type Throttled struct {
	next    Mailer
	limiter *rate.Limiter
}

// NewThrottled allows perMinute messages per minute with a burst of the
// same size. perMinute <= 0 disables pacing.
func NewThrottled(next Mailer, perMinute int) *Throttled {
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = perMinute
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Deliver forwards msg when a send slot is free and returns ErrThrottled
// immediately otherwise.
func (t *Throttled) Deliver(ctx context.Context, msg Message) error {
	if !t.limiter.Allow() {
		return ErrThrottled
	}
	return t.next.Deliver(ctx, msg)
}
