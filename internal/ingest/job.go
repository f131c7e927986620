package ingest

import "fmt"

// FileError records one failed file without aborting the batch.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// FileRecord is the outcome of a single file. Collection is empty when the
// file produced no objects or failed; Err is empty on success.
type FileRecord struct {
	File       string
	Collection string
	Err        string
}

// job is the state of one batch, owned by the runner instance and mutated
// once per tick. Settings are snapshotted at start; the undo flag captured
// here is restored on any terminal transition.
type job struct {
	files    []string
	index    int
	errs     []FileError
	created  []string // collection names, insertion order = import order
	records  []FileRecord
	settings Settings
	undoWas  bool
}

// Summary reports the outcome of a finished or cancelled job.
type Summary struct {
	State     State
	Total     int
	Processed int
	Imported  int
	Errors    []FileError

	// Collections lists the created collection names in import order.
	Collections []string

	// Files holds the per-file outcomes for the processed prefix of the
	// batch.
	Files []FileRecord
}

// String renders the one-line job report.
func (s Summary) String() string {
	if s.State == StateCancelled {
		return fmt.Sprintf("Import cancelled after %d/%d files.", s.Processed, s.Total)
	}
	msg := fmt.Sprintf("AutoIngest: %d OBJ(s) imported.", s.Imported)
	if len(s.Errors) > 0 {
		msg += fmt.Sprintf("  %d error(s) - see log.", len(s.Errors))
	}
	return msg
}
