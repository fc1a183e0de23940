package places

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound reports a valid miss: the place identifier does not (or no
// longer does) resolve upstream. It is not retryable.
var ErrNotFound = errors.New("place not found")

// RateLimitError reports an upstream 429. RetryAfter carries the upstream
// Retry-After value, defaulting to one second when the header is absent.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// RetryAfterDelay lets retry policies use the upstream hint as a backoff floor.
func (e *RateLimitError) RetryAfterDelay() time.Duration {
	return e.RetryAfter
}

// UpstreamError covers any other non-2xx status or transport failure.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: upstream failure: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether a places failure is worth another attempt.
// Not-found and malformed-input failures are definitive and never retried.
func IsRetryable(err error) bool {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var up *UpstreamError
	return errors.As(err, &up)
}
