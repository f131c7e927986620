package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestBoxForPoints(t *testing.T) {
	box := BoxForPoints([]Vec3{
		{1, -2, 3},
		{-1, 4, 0},
		{0, 0, 5},
	})
	assert.Equal(t, Vec3{-1, -2, 0}, box.Min)
	assert.Equal(t, Vec3{1, 4, 5}, box.Max)
}

func TestBoxForPoints_Empty(t *testing.T) {
	box := BoxForPoints(nil)
	assert.Equal(t, Box{}, box)
	size, _ := box.LongestAxis()
	assert.Zero(t, size)
}

func TestBoxCorners(t *testing.T) {
	box := Box{Min: Vec3{0, 0, 0}, Max: Vec3{1, 2, 3}}
	corners := box.Corners()

	// Every corner is a combination of min/max components, and the
	// box reconstructed from them equals the original.
	rebuilt := BoxForPoints(corners[:])
	assert.Equal(t, box, rebuilt)

	seen := make(map[Vec3]bool)
	for _, c := range corners {
		seen[c] = true
	}
	assert.Len(t, seen, 8, "corners must be distinct")
}

func TestBoxCenter(t *testing.T) {
	box := Box{Min: Vec3{-2, 0, 4}, Max: Vec3{2, 6, 8}}
	assert.Equal(t, Vec3{0, 3, 6}, box.Center())
}

func TestBoxLongestAxis(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		size float32
		axis int
	}{
		{"x longest", Box{Max: Vec3{5, 1, 2}}, 5, 0},
		{"y longest", Box{Max: Vec3{1, 7, 2}}, 7, 1},
		{"z longest", Box{Max: Vec3{1, 2, 9}}, 9, 2},
		{"tie picks lowest axis", Box{Max: Vec3{3, 3, 1}}, 3, 0},
		{"degenerate", Box{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, axis := tt.box.LongestAxis()
			assert.InDelta(t, tt.size, size, eps)
			assert.Equal(t, tt.axis, axis)
		})
	}
}

func TestMat4_TranslateScale(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(ScaleMat(Vec3{2, 2, 2}))
	p := m.MulPosition(Vec3{1, 1, 1})
	assert.True(t, p.ApproxEqual(Vec3{3, 4, 5}, eps), "got %v", p)

	// Directions ignore translation.
	d := m.MulDirection(Vec3{1, 0, 0})
	assert.True(t, d.ApproxEqual(Vec3{2, 0, 0}, eps), "got %v", d)
}

func TestMat4_Identity(t *testing.T) {
	p := Vec3{4, -5, 6}
	assert.Equal(t, p, Identity().MulPosition(p))
}

func TestTRS_Composition(t *testing.T) {
	// No rotation: TRS reduces to translate+scale.
	m := TRS(Vec3{10, 0, 0}, Vec3{}, Vec3{2, 3, 4})
	p := m.MulPosition(Vec3{1, 1, 1})
	require.True(t, p.ApproxEqual(Vec3{12, 3, 4}, eps), "got %v", p)
}

func TestVec3_MulElem(t *testing.T) {
	assert.Equal(t, Vec3{2, 6, 12}, Vec3{1, 2, 3}.MulElem(Vec3{2, 3, 4}))
}
