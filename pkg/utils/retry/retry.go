package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 10 * time.Second
)

// Policy is a reusable retry policy: attempt budget, exponential delay
// and a jitter source. The zero value retries nothing. The same policy
// value is injected into every component that talks to the forge API.
type Policy struct {
	// Limit is the number of retries after the first attempt, so the
	// total attempt count is Limit+1
	Limit int

	// BaseDelay is the wait before the first retry; doubled per attempt
	// up to MaxDelay
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// Jitter yields values in [0,1); defaults to math/rand
	Jitter func() float64
}

// Attempts returns the total number of attempts the policy allows
func (p Policy) Attempts() int {
	if p.Limit < 0 {
		return 1
	}
	return p.Limit + 1
}

// Delay returns the wait before retry number attempt (0-based). The
// exponential delay is capped at MaxDelay, then up to one extra delay
// of jitter is added.
func (p Policy) Delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	maximum := p.MaxDelay
	if maximum <= 0 {
		maximum = defaultMaxDelay
	}

	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= maximum {
			delay = maximum
			break
		}
	}

	jitter := p.Jitter
	if jitter == nil {
		jitter = rand.Float64
	}
	return delay + time.Duration(jitter()*float64(delay))
}

// Do runs op, retrying while retryable(err) is true and budget remains.
// The last error is returned as-is after exhaustion: callers decide the
// final disposition, Do never rewrites the failure.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < p.Attempts(); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(p.Delay(attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
