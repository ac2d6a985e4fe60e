package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

// ErrNotFound is returned when an entity id does not exist
var ErrNotFound = errors.New("not found")

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// StrictError is returned when strict validation refuses a change.
// Warnings lists the blocking warnings the change would have introduced.
type StrictError struct {
	Warnings []model.Warning
}

func (e *StrictError) Error() string {
	msgs := make([]string, len(e.Warnings))
	for i, w := range e.Warnings {
		msgs[i] = w.Message
	}
	return fmt.Sprintf("strict validation rejected change (%d new warnings): %s",
		len(e.Warnings), strings.Join(msgs, "; "))
}

// ImportError is returned when an import file fails the pre-flight check
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return "import rejected: " + e.Reason + ": " + e.Err.Error()
	}
	return "import rejected: " + e.Reason
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
