// README: Bounded retry policy with exponential backoff, decoupled from the call site.
package suggestion

import (
	"errors"
	"time"

	"tripzen/internal/ai"
)

// RetryPolicy bounds the completion retry loop. Keeping the policy separate
// from the generator makes attempt counting and backoff testable without any
// network behaviour.
type RetryPolicy struct {
	// MaxAttempts is the total number of completion attempts, first try included.
	MaxAttempts int

	// BaseDelay is the backoff unit; the delay after the n-th failure
	// (0-based) is BaseDelay * 2^n, so with a 1s base the generator waits
	// ~1s after the first failure and ~2s after the second.
	BaseDelay time.Duration

	// RetryInvalidShape allows one full re-run of the generation loop when
	// the transformed output fails validation.
	RetryInvalidShape bool
}

// DefaultRetryPolicy is the production policy: 3 attempts, 1s backoff base,
// one extra loop on a shape failure.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		BaseDelay:         time.Second,
		RetryInvalidShape: true,
	}
}

// Backoff returns the delay to wait after the given 0-based failure index.
func (p RetryPolicy) Backoff(failure int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < failure; i++ {
		d *= 2
	}
	return d
}

// IsRetryable reports whether the completion loop should try again after err.
// Timeouts are terminal: a stalled provider call is unlikely to unstick
// through resubmission within the same budget. Everything else (provider
// errors, malformed JSON) is retried until the attempt budget runs out.
func (p RetryPolicy) IsRetryable(err error) bool {
	return !errors.Is(err, ai.ErrTimeout)
}
