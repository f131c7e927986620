package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foligraf/autoingest/internal/geometry"
	"github.com/foligraf/autoingest/internal/scene"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const cubeOBJ = `# cube
v -1 -1 -1
v -1 -1 1
v -1 1 -1
v -1 1 1
v 1 -1 -1
v 1 -1 1
v 1 1 -1
v 1 1 1
f 1 2 4 3
f 5 6 8 7
f 1 2 6 5
f 3 4 8 7
f 1 3 7 5
f 2 4 8 6
`

func TestParseUpAxis(t *testing.T) {
	for _, s := range []string{"X", "Y", "Z", "-X", "-Y", "-Z"} {
		a, err := ParseUpAxis(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(a))
	}

	_, err := ParseUpAxis("NEGATIVE_Z")
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestConversionMatrix_MapsUpToZ(t *testing.T) {
	for _, a := range UpAxes {
		m := a.ConversionMatrix()
		up := m.MulDirection(a.vector())
		assert.True(t, up.ApproxEqual(geometry.Vec3{0, 0, 1}, 1e-5),
			"up %s maps to %v", a, up)
	}
}

func TestConversionMatrix_PreservesLength(t *testing.T) {
	p := geometry.Vec3{1, 2, 3}
	for _, a := range UpAxes {
		q := a.ConversionMatrix().MulDirection(p)
		assert.InDelta(t, p.Len(), q.Len(), 1e-4, "axis %s", a)
	}
}

func TestOBJ_Import_SingleObject(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "crate.obj", cubeOBJ)

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	require.Len(t, created, 1)

	obj := created[0]
	assert.Equal(t, "crate", obj.Name)
	require.True(t, obj.IsMesh())
	assert.Len(t, obj.Mesh.Vertices, 8)
	assert.Equal(t, geometry.Vec3{-1, -1, -1}, obj.BoundBox().Min)
	assert.Equal(t, geometry.Vec3{1, 1, 1}, obj.BoundBox().Max)

	// Imported objects land in the scene root collection.
	assert.Contains(t, doc.RootCollection().Objects(), obj)
}

func TestOBJ_Import_UpAxisY(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pillar.obj", "v 0 2 0\nv 0 0 0\nf 1 2 1\n")

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpY)
	require.NoError(t, err)
	require.Len(t, created, 1)

	// File-space Y extent becomes scene-space Z extent.
	size := created[0].BoundBox().Size()
	assert.InDelta(t, 2, size[2], 1e-5)
	assert.InDelta(t, 0, size[1], 1e-5)
}

func TestOBJ_Import_NamedGroups(t *testing.T) {
	dir := t.TempDir()
	content := "o lid\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\no base\nv 0 0 1\nv 1 0 1\nv 0 1 1\nf 4 5 6\n"
	path := writeFile(t, dir, "box.obj", content)

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "box_lid", created[0].Name)
	assert.Equal(t, "box_base", created[1].Name)
	assert.Len(t, created[0].Mesh.Vertices, 3)
	assert.Len(t, created[1].Mesh.Vertices, 3)
}

func TestOBJ_Import_NegativeIndices(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n")

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Len(t, created[0].Mesh.Vertices, 3)
}

func TestOBJ_Import_PointsOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cloud.obj", "v 0 0 0\nv 1 2 3\n")

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Len(t, created[0].Mesh.Vertices, 2)
}

func TestOBJ_Import_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.obj", "# nothing here\n")

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestOBJ_Import_MissingFile(t *testing.T) {
	doc := scene.NewDocument()
	_, err := NewOBJ(testLogger()).Import(context.Background(), doc, "/nonexistent/x.obj", UpZ)
	assert.ErrorIs(t, err, ErrOpenFile)
}

func TestOBJ_Import_Materials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crate.mtl", "newmtl wood\nKd 0.5 0.3 0.1\nmap_Kd wood.png\nnewmtl plain\nKd 1 1 1\n")
	content := "mtllib crate.mtl\nusemtl wood\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	path := writeFile(t, dir, "crate.obj", content)

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	require.Len(t, created, 1)

	require.Len(t, created[0].Slots, 1)
	mat := created[0].Slots[0].Material
	require.NotNil(t, mat)
	assert.Equal(t, "wood", mat.Name)
	require.NotNil(t, mat.NodeTree)

	// The diffuse map is wired into Base Color of a principled node.
	var principled *scene.Node
	for _, n := range mat.NodeTree.Nodes() {
		if n.Type == scene.NodeBSDFPrincipled {
			principled = n
		}
	}
	require.NotNil(t, principled)
	base := principled.Input("Base Color")
	require.True(t, base.IsLinked())
	assert.Equal(t, scene.NodeTexImage, base.FromSocket().Node.Type)

	// The unused material is still registered.
	assert.NotNil(t, doc.Material("plain"))
}

func TestOBJ_Import_MissingMTLIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.obj", "mtllib gone.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	doc := scene.NewDocument()
	created, err := NewOBJ(testLogger()).Import(context.Background(), doc, path, UpZ)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}
