package registration

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoSections = errors.New("no sections found")

// Fetcher retrieves every section offered for a course code in a term.
type Fetcher interface {
	FetchSections(ctx context.Context, courseCode, term string) ([]RawSection, error)
}

// Resetter is implemented by fetchers that keep session state between calls.
type Resetter interface {
	Reset()
}

// StatusError reports an unexpected HTTP status from the registration system.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (err StatusError) Error() string {
	return fmt.Sprintf("%v failed with status code: %d", err.Operation, err.StatusCode)
}
