// README: Error taxonomy for the suggestion pipeline.
package suggestion

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse reports a completion body that is not parseable JSON.
// It is retryable: the model may produce well-formed output on resubmission.
var ErrMalformedResponse = errors.New("model response is not valid JSON")

// ShapeError reports parseable JSON whose structure does not satisfy the
// suggestion schema. It is a defect in the model's output rather than a
// transport problem, so it is at most retried once.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid suggestion shape at %s: %s", e.Path, e.Reason)
}

// GenerationError is the terminal failure raised once the retry budget is
// exhausted. It carries the last underlying error for diagnostics.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("suggestion generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
