package llm

import (
	"context"
	"time"
)

// RetryPolicy is a bounded retry with a fixed backoff between attempts.
// Shared by the fallback invoker's callers and the per-question loop so
// the retry shape lives in one place.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetry matches the service-wide retry posture: three attempts,
// one second apart.
var DefaultRetry = RetryPolicy{MaxAttempts: 3, Backoff: 1 * time.Second}

// Do runs fn until it succeeds or MaxAttempts is reached, sleeping
// Backoff between attempts. Returns the last error. Honors ctx
// cancellation during the backoff wait.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff):
		}
	}
	return lastErr
}
