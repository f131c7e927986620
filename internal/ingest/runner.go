// Package ingest implements the batch OBJ ingest core: per-file
// normalization (pivot, scale, materials, collections) and the cooperative
// driver that advances one file per tick.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/foligraf/autoingest/internal/scene"
)

// State is the driver state machine.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether the state ends a job.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateCancelled
}

// Config for the runner.
type Config struct {
	Doc      *scene.Document
	Importer Importer
	Folder   string
	Settings Settings

	// Interval is the tick cadence used by Run. Defaults to 10ms.
	Interval time.Duration

	// Redraw, when set, is called once per tick after progress updates
	// and before the per-file work, so a UI can repaint first.
	Redraw func()

	Log *slog.Logger
}

// Runner drives one batch at a time over a scene document. It processes
// exactly one file per tick and yields between ticks, which is what keeps a
// host event loop responsive during a long batch. Progress and the running
// flag may be read from other goroutines; everything else is single-owner.
type Runner struct {
	doc      *scene.Document
	importer Importer
	folder   string
	settings Settings
	interval time.Duration
	redraw   func()
	log      *slog.Logger

	state     atomic.Int32
	progress  atomic.Int32
	cancelled atomic.Bool

	job     *job
	summary Summary
}

// NewRunner creates a runner.
func NewRunner(cfg Config) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Millisecond
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	return &Runner{
		doc:      cfg.Doc,
		importer: cfg.Importer,
		folder:   cfg.Folder,
		settings: cfg.Settings,
		interval: cfg.Interval,
		redraw:   cfg.Redraw,
		log:      cfg.Log,
	}
}

// Start validates preconditions and opens a job. On any validation failure
// the runner stays idle and no job state is created. On success the file
// list is enumerated, settings are snapshotted, and the document's undo
// recording is disabled for the duration of the batch; logging hundreds of
// individual imports into the change history would saturate memory.
func (r *Runner) Start() error {
	if State(r.state.Load()) == StateRunning {
		return ErrAlreadyRunning
	}

	info, err := os.Stat(r.folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNoFolder, r.folder)
	}

	if r.settings.UseScaleRef && r.settings.Reference == nil {
		return ErrNoReference
	}

	files, err := CollectMeshFiles(r.folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %q", ErrNoFilesFound, r.folder)
	}

	r.job = &job{
		files:    files,
		settings: r.settings,
		undoWas:  r.doc.Preferences.UndoRecording,
	}
	r.doc.Preferences.UndoRecording = false

	r.summary = Summary{}
	r.progress.Store(0)
	r.cancelled.Store(false)
	r.state.Store(int32(StateRunning))

	r.log.Info("ingest started", "folder", r.folder, "files", len(files))
	return nil
}

// Cancel requests cancellation. It is observed at the start of the next
// tick; the file being processed always completes.
func (r *Runner) Cancel() { r.cancelled.Store(true) }

// Tick advances the job by one file and returns the resulting state.
// Calling Tick outside a running job is a no-op.
func (r *Runner) Tick(ctx context.Context) State {
	if State(r.state.Load()) != StateRunning {
		return State(r.state.Load())
	}

	if r.cancelled.Load() || ctx.Err() != nil {
		return r.finish(StateCancelled)
	}

	j := r.job
	if j.index >= len(j.files) {
		return r.finish(StateFinished)
	}

	// Progress moves before the potentially slow import so an indicator
	// advances immediately; (index+1) makes the first file show > 0%.
	r.progress.Store(int32((j.index + 1) * 100 / len(j.files)))

	// Flush hierarchy changes from the previous tick, then let the UI
	// repaint.
	r.doc.ViewLayerUpdate()
	if r.redraw != nil {
		r.redraw()
	}

	path := j.files[j.index]

	// The current file runs to completion even if the context is
	// cancelled mid-file; cancellation lands on the next tick.
	name := filepath.Base(path)
	col, err := r.processFile(context.WithoutCancel(ctx), j, path)
	if err != nil {
		j.errs = append(j.errs, FileError{File: name, Err: err})
		j.records = append(j.records, FileRecord{File: name, Err: err.Error()})
		r.log.Error("file failed", "file", name, "error", err)
	} else {
		j.records = append(j.records, FileRecord{File: name, Collection: col})
	}
	j.index++

	return StateRunning
}

// finish performs the shared terminal transition: stop counting, restore
// the undo-recording flag captured at start, reset progress, and build the
// summary. Per-file errors are surfaced individually as well as counted.
func (r *Runner) finish(final State) State {
	j := r.job

	r.doc.Preferences.UndoRecording = j.undoWas
	r.progress.Store(0)
	r.state.Store(int32(final))

	r.summary = Summary{
		State:       final,
		Total:       len(j.files),
		Processed:   j.index,
		Imported:    j.index - len(j.errs),
		Errors:      j.errs,
		Collections: j.created,
		Files:       j.records,
	}

	for _, fe := range j.errs {
		r.log.Error("ingest error", "file", fe.File, "error", fe.Err)
	}
	if final == StateCancelled {
		r.log.Warn("ingest cancelled", "processed", j.index, "total", len(j.files))
	} else {
		r.log.Info("ingest finished", "imported", r.summary.Imported, "errors", len(j.errs))
	}

	r.job = nil
	return final
}

// Run starts a job and drives Tick on the configured interval until a
// terminal state. Context cancellation is translated into a cancel request
// and honored at the next tick boundary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if err := r.Start(); err != nil {
		return Summary{}, err
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Cancel()
		case <-ticker.C:
		}

		if r.Tick(ctx).Terminal() {
			return r.summary, nil
		}
	}
}

// CurrentState returns the driver state.
func (r *Runner) CurrentState() State { return State(r.state.Load()) }

// Running reports whether a job is in progress.
func (r *Runner) Running() bool { return r.CurrentState() == StateRunning }

// Progress returns the integer percent (0-100) for the running job. It is
// 0 outside a job.
func (r *Runner) Progress() int { return int(r.progress.Load()) }

// Summary returns the report of the last finished or cancelled job.
func (r *Runner) Summary() Summary { return r.summary }
