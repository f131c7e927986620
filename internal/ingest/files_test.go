package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foligraf/autoingest/internal/ingest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCollectMeshFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.obj", "")
	writeFile(t, dir, "a.obj", "")
	writeFile(t, dir, "sub/c.obj", "")
	writeFile(t, dir, "sub/deep/d.OBJ", "")
	writeFile(t, dir, "ignore.txt", "")
	writeFile(t, dir, "ignore.mtl", "")

	files, err := ingest.CollectMeshFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 4)

	expected := []string{
		filepath.Join(dir, "a.obj"),
		filepath.Join(dir, "b.obj"),
		filepath.Join(dir, "sub", "c.obj"),
		filepath.Join(dir, "sub", "deep", "d.OBJ"),
	}
	assert.Equal(t, expected, files)

	// Repeated scans return the same order.
	again, err := ingest.CollectMeshFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}

func TestCollectMeshFiles_Empty(t *testing.T) {
	files, err := ingest.CollectMeshFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectMeshFiles_MissingRoot(t *testing.T) {
	_, err := ingest.CollectMeshFiles("/nonexistent/folder")
	assert.Error(t, err)
}
