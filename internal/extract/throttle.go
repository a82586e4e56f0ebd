package extract

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the pause between two OCR requests.
const DefaultDelay = 500 * time.Millisecond

// Throttle paces sequential OCR requests. Wait is called between two
// requests and blocks until the next one may start.
type Throttle interface {
	Wait(ctx context.Context) error
}

// FixedDelay sleeps for a constant duration.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Limiter spaces requests to at most perMinute per minute.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter returns a Limiter whose first Wait already waits a full interval.
func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	l := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	l.Allow()
	return &Limiter{l: l}
}

func (l *Limiter) Wait(ctx context.Context) error { return l.l.Wait(ctx) }
