package scene

import "errors"

var (
	// ErrCollectionExists indicates a collection with that name is already
	// registered.
	ErrCollectionExists = errors.New("collection name already in use")

	// ErrNotLinked indicates the child collection is not linked under the
	// given parent.
	ErrNotLinked = errors.New("collection not linked under parent")
)
