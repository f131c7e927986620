package ingest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/foligraf/autoingest/internal/geometry"
	"github.com/foligraf/autoingest/internal/importer"
	"github.com/foligraf/autoingest/internal/ingest"
	"github.com/foligraf/autoingest/internal/ingest/mocks"
	"github.com/foligraf/autoingest/internal/scene"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const triangleOBJ = "v 0 0 0\nv 2 0 0\nv 0 1 0\nf 1 2 3\n"

func newTestRunner(t *testing.T, folder string, settings ingest.Settings) (*ingest.Runner, *scene.Document) {
	t.Helper()
	doc := scene.NewDocument()
	r := ingest.NewRunner(ingest.Config{
		Doc:      doc,
		Importer: importer.NewOBJ(testLogger()),
		Folder:   folder,
		Settings: settings,
		Interval: time.Millisecond,
		Log:      testLogger(),
	})
	return r, doc
}

func TestRunner_Preconditions(t *testing.T) {
	t.Run("missing folder", func(t *testing.T) {
		r, _ := newTestRunner(t, "/nonexistent", ingest.DefaultSettings())
		err := r.Start()
		assert.ErrorIs(t, err, ingest.ErrNoFolder)
		assert.Equal(t, ingest.StateIdle, r.CurrentState())
	})

	t.Run("no files", func(t *testing.T) {
		r, _ := newTestRunner(t, t.TempDir(), ingest.DefaultSettings())
		err := r.Start()
		assert.ErrorIs(t, err, ingest.ErrNoFilesFound)
		assert.Equal(t, ingest.StateIdle, r.CurrentState())
	})

	t.Run("reference required", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.obj", triangleOBJ)
		settings := ingest.DefaultSettings()
		settings.UseScaleRef = true
		r, _ := newTestRunner(t, dir, settings)
		err := r.Start()
		assert.ErrorIs(t, err, ingest.ErrNoReference)
		assert.Equal(t, ingest.StateIdle, r.CurrentState())
	})
}

func TestRunner_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.obj", triangleOBJ)
	writeFile(t, dir, "beta.obj", triangleOBJ)
	writeFile(t, dir, "gamma.obj", triangleOBJ)

	r, doc := newTestRunner(t, dir, ingest.DefaultSettings())
	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ingest.StateFinished, summary.State)
	assert.Equal(t, 3, summary.Imported)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, summary.Collections)
	assert.Equal(t, "AutoIngest: 3 OBJ(s) imported.", summary.String())

	// One collection per file, each holding the pivot empty plus the
	// meshes, parented under the pivot.
	for _, name := range []string{"alpha", "beta", "gamma"} {
		col := doc.Collection(name)
		require.NotNil(t, col, "collection %s", name)

		var pivot *scene.Object
		var meshes []*scene.Object
		for _, obj := range col.Objects() {
			if obj.IsMesh() {
				meshes = append(meshes, obj)
			} else {
				pivot = obj
			}
		}
		require.NotNil(t, pivot, "pivot in %s", name)
		assert.Equal(t, "EMPTY_"+name, pivot.Name)
		assert.Equal(t, scene.EmptyPlainAxes, pivot.EmptyDisplay)
		require.NotEmpty(t, meshes)
		for _, m := range meshes {
			assert.Same(t, pivot, m.Parent)
			assert.Equal(t, geometry.Vec3{}, m.Location)
			// Centered pivots: geometry centred on local origin.
			c := m.BoundBox().Center()
			assert.True(t, c.ApproxEqual(geometry.Vec3{}, eps), "center %v", c)
		}
	}

	// Only the last collection is visible.
	for name, wantExcluded := range map[string]bool{"alpha": true, "beta": true, "gamma": false} {
		lc := scene.FindLayerCollection(doc.ViewLayer(), name)
		require.NotNil(t, lc, name)
		assert.Equal(t, wantExcluded, lc.Exclude, name)
	}

	// Terminal state restored host settings.
	assert.True(t, doc.Preferences.UndoRecording)
	assert.Zero(t, r.Progress())
	assert.False(t, r.Running())
}

func TestRunner_TickProgressAndUndoFlag(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		writeFile(t, dir, n+".obj", triangleOBJ)
	}

	r, doc := newTestRunner(t, dir, ingest.DefaultSettings())
	require.NoError(t, r.Start())
	assert.True(t, r.Running())
	assert.False(t, doc.Preferences.UndoRecording, "undo disabled for the batch")

	ctx := context.Background()
	assert.Equal(t, ingest.StateRunning, r.Tick(ctx))
	assert.Equal(t, 20, r.Progress())
	assert.Equal(t, ingest.StateRunning, r.Tick(ctx))
	assert.Equal(t, 40, r.Progress())

	for i := 0; i < 3; i++ {
		assert.Equal(t, ingest.StateRunning, r.Tick(ctx))
	}
	assert.Equal(t, ingest.StateFinished, r.Tick(ctx))
	assert.Zero(t, r.Progress())
	assert.True(t, doc.Preferences.UndoRecording)
}

func TestRunner_CancelMidBatch(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		writeFile(t, dir, n+".obj", triangleOBJ)
	}

	r, doc := newTestRunner(t, dir, ingest.DefaultSettings())
	require.NoError(t, r.Start())

	ctx := context.Background()
	r.Tick(ctx)
	r.Tick(ctx)
	r.Cancel()

	// Cancellation observed at the start of the next tick.
	assert.Equal(t, ingest.StateCancelled, r.Tick(ctx))

	summary := r.Summary()
	assert.Equal(t, ingest.StateCancelled, summary.State)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, "Import cancelled after 2/5 files.", summary.String())
	assert.True(t, doc.Preferences.UndoRecording)
	assert.Zero(t, r.Progress())
}

func TestRunner_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.obj", triangleOBJ)
	writeFile(t, dir, "b.obj", triangleOBJ)

	r, _ := newTestRunner(t, dir, ingest.DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, ingest.StateCancelled, summary.State)
	assert.Zero(t, summary.Processed)
}

func TestRunner_PerFileErrorContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.obj", triangleOBJ)
	writeFile(t, dir, "good.obj", triangleOBJ)

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockImporter(ctrl)
	importErr := errors.New("corrupt header")
	mock.EXPECT().
		Import(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc *scene.Document, path string, _ importer.UpAxis) ([]*scene.Object, error) {
			if filepath.Base(path) == "bad.obj" {
				return nil, importErr
			}
			obj := doc.NewObject("good", &scene.Mesh{Vertices: []geometry.Vec3{{0, 0, 0}, {1, 1, 1}}})
			doc.RootCollection().LinkObject(obj)
			return []*scene.Object{obj}, nil
		}).
		Times(2)

	doc := scene.NewDocument()
	r := ingest.NewRunner(ingest.Config{
		Doc:      doc,
		Importer: mock,
		Folder:   dir,
		Settings: ingest.DefaultSettings(),
		Interval: time.Millisecond,
		Log:      testLogger(),
	})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ingest.StateFinished, summary.State)
	assert.Equal(t, 1, summary.Imported)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "bad.obj", summary.Errors[0].File)
	assert.ErrorIs(t, summary.Errors[0], importErr)
	assert.Equal(t, "AutoIngest: 1 OBJ(s) imported.  1 error(s) - see log.", summary.String())

	require.Len(t, summary.Files, 2)
	assert.Equal(t, ingest.FileRecord{File: "bad.obj", Err: "corrupt header"}, summary.Files[0])
	assert.Equal(t, ingest.FileRecord{File: "good.obj", Collection: "good"}, summary.Files[1])

	// The good file still produced its collection.
	assert.NotNil(t, doc.Collection("good"))
	assert.Nil(t, doc.Collection("bad"))
	assert.True(t, doc.Preferences.UndoRecording, "undo restored despite errors")
}

func TestRunner_EmptyImportSetSkipsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hollow.obj", "# nothing\n")
	writeFile(t, dir, "solid.obj", triangleOBJ)

	r, doc := newTestRunner(t, dir, ingest.DefaultSettings())
	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	// The empty file is not an error, and leaves no collection behind.
	assert.Empty(t, summary.Errors)
	assert.Nil(t, doc.Collection("hollow"))
	assert.NotNil(t, doc.Collection("solid"))
	assert.Equal(t, []string{"solid"}, summary.Collections)
}

func TestRunner_SuffixWhenNotReplacing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crate.obj", triangleOBJ)

	r, doc := newTestRunner(t, dir, ingest.DefaultSettings())
	_, err := r.Run(context.Background())
	require.NoError(t, err)

	// Second run without replace-mode: suffixed collection.
	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"crate_001"}, summary.Collections)
	assert.NotNil(t, doc.Collection("crate"))
	assert.NotNil(t, doc.Collection("crate_001"))
}

func TestRunner_ReplaceExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.obj", triangleOBJ)
	writeFile(t, dir, "beta.obj", triangleOBJ)
	writeFile(t, dir, "gamma.obj", triangleOBJ)

	settings := ingest.DefaultSettings()
	settings.ReplaceExisting = true
	r, doc := newTestRunner(t, dir, settings)

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	objectsAfterFirst := len(doc.Objects())

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	// Replaced, not suffixed, and no object leak from the first run.
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, summary.Collections)
	assert.False(t, doc.HasCollection("alpha_001"))
	assert.Equal(t, objectsAfterFirst, len(doc.Objects()))

	// The rerun's last collection is the visible one.
	for name, wantExcluded := range map[string]bool{"alpha": true, "beta": true, "gamma": false} {
		lc := scene.FindLayerCollection(doc.ViewLayer(), name)
		require.NotNil(t, lc, name)
		assert.Equal(t, wantExcluded, lc.Exclude, name)
	}
}

func TestRunner_ScaleToReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.obj", triangleOBJ)

	doc := scene.NewDocument()
	ref := doc.NewObject("ref", &scene.Mesh{Vertices: []geometry.Vec3{{0, 0, 0}, {10, 0, 0}}})

	settings := ingest.DefaultSettings()
	settings.UseScaleRef = true
	settings.Reference = ref
	settings.ApplyScale = true

	r := ingest.NewRunner(ingest.Config{
		Doc:      doc,
		Importer: importer.NewOBJ(testLogger()),
		Folder:   dir,
		Settings: settings,
		Interval: time.Millisecond,
		Log:      testLogger(),
	})
	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, summary.Errors)

	col := doc.Collection("a")
	require.NotNil(t, col)
	for _, obj := range col.Objects() {
		if !obj.IsMesh() {
			continue
		}
		size, _ := ingest.LongestAxisSize(obj)
		assert.InDelta(t, 10, size, eps)
		assert.Equal(t, geometry.Vec3{1, 1, 1}, obj.Scale, "baked scale")
	}
}

func TestRunner_StartWhileRunning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.obj", triangleOBJ)

	r, _ := newTestRunner(t, dir, ingest.DefaultSettings())
	require.NoError(t, r.Start())
	assert.ErrorIs(t, r.Start(), ingest.ErrAlreadyRunning)

	// Drain so the test leaves the runner terminal.
	ctx := context.Background()
	for !r.Tick(ctx).Terminal() {
	}
}

func TestRunner_RedrawHook(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.obj", triangleOBJ)
	writeFile(t, dir, "b.obj", triangleOBJ)

	var redraws int
	doc := scene.NewDocument()
	r := ingest.NewRunner(ingest.Config{
		Doc:      doc,
		Importer: importer.NewOBJ(testLogger()),
		Folder:   dir,
		Settings: ingest.DefaultSettings(),
		Redraw:   func() { redraws++ },
		Log:      testLogger(),
	})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, redraws, "one redraw per work tick")
}
