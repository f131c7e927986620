package history

import "errors"

var (
	// ErrNotFound is returned when a job does not exist.
	ErrNotFound = errors.New("job not found")
)
