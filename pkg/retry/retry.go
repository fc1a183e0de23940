package retry

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Policy is a bounded retry with exponential backoff. The zero value performs
// a single attempt; use NewPolicy for the standard budget.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Factor      float64

	// Retryable decides whether a failure is worth another attempt. A nil
	// Retryable never retries.
	Retryable func(error) bool

	// sleep is injectable so tests can observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPolicy returns the standard budget: up to 3 attempts, delays starting at
// one second and doubling per attempt, capped at ten seconds.
func NewPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
		Factor:      2,
		Retryable:   retryable,
		sleep:       sleepContext,
	}
}

// delayHinter is implemented by failures that carry an upstream backoff hint
// (e.g. a Retry-After header). The hint acts as a floor under the computed
// backoff.
type delayHinter interface {
	RetryAfterDelay() time.Duration
}

// Do runs fn until it succeeds, the attempt budget is exhausted, or the
// context is cancelled. The last failure propagates unchanged.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}
		if attempt == maxAttempts {
			break
		}

		delay := p.backoff(attempt, err)
		log.Debug().Int("attempt", attempt).Dur("delay", delay).Err(err).
			Msg("retrying after backoff")
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func (p Policy) backoff(attempt int, err error) time.Duration {
	delay := p.BaseDelay
	factor := p.Factor
	if factor <= 0 {
		factor = 2
	}
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * factor)
	}
	var hinter delayHinter
	if errors.As(err, &hinter) && hinter.RetryAfterDelay() > delay {
		delay = hinter.RetryAfterDelay()
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
