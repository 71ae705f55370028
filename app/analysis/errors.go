package analysis

import (
	"fmt"
)

// InsufficientContentError reports article text too short to classify.
// The pipeline absorbs it and falls back to source-rating-only scoring
// instead of failing the request.
type InsufficientContentError struct {
	WordCount int
	Minimum   int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("insufficient content: %d words, need at least %d", e.WordCount, e.Minimum)
}

// ModelUnavailableError reports missing or corrupt classifier parameters.
// It is fatal at startup; the process must not serve requests without its
// models.
type ModelUnavailableError struct {
	Reason string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model unavailable: %s", e.Reason)
}
