package source

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no descriptor for a term produced an image.
	ErrNotFound = errors.New("not found")
	// ErrUnsupported means the source cannot look up this kind of term,
	// e.g. a card name against a code-only CDN.
	ErrUnsupported = errors.New("unsupported source/term combination")
	// ErrTransient marks a fetch that kept failing with a retryable status
	// or network error. It never leaves the executor as a batch error.
	ErrTransient = errors.New("transient fetch failure")
)

// StatusError is a non-200 HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}
