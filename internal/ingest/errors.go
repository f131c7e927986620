package ingest

import "errors"

var (
	// ErrNoFolder indicates the source folder is missing or not a
	// directory.
	ErrNoFolder = errors.New("source folder not found")

	// ErrNoFilesFound indicates the recursive scan matched no mesh files.
	ErrNoFilesFound = errors.New("no OBJ files found in folder")

	// ErrNoReference indicates scale-to-reference is enabled without a
	// reference object.
	ErrNoReference = errors.New("scale to reference enabled but no reference object set")

	// ErrAlreadyRunning indicates a job is already in progress on this
	// runner.
	ErrAlreadyRunning = errors.New("ingest job already running")

	// ErrNameExhausted indicates all numeric suffixes for a collection
	// base name are taken.
	ErrNameExhausted = errors.New("all suffixes exhausted for collection name")
)
