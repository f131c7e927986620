package ingest

import (
	"github.com/foligraf/autoingest/internal/geometry"
	"github.com/foligraf/autoingest/internal/scene"
)

// LongestAxisSize returns the world-space size of the object's bounding box
// along its longest axis, and which axis that is (0/1/2).
func LongestAxisSize(obj *scene.Object) (float32, int) {
	world := obj.MatrixWorld()
	corners := obj.BoundBox().Corners()

	points := make([]geometry.Vec3, len(corners))
	for i, c := range corners {
		points[i] = world.MulPosition(c)
	}
	return geometry.BoxForPoints(points).LongestAxis()
}

// MatchToReference applies a homothetic scale to every object so its
// longest axis matches ref's. A zero-extent reference skips the whole
// operation; a zero-extent target is skipped individually. Neither is an
// error.
//
// With bake set, the matched scale is multiplied into vertex coordinates
// and the object's transform scale returns to (1,1,1), so downstream
// consumers see unit scale. Without it the factor stays on the transform:
// visually equivalent, but scale != 1 downstream.
func MatchToReference(objects []*scene.Object, ref *scene.Object, bake bool) {
	refSize, _ := LongestAxisSize(ref)
	if refSize == 0 {
		return
	}

	for _, obj := range objects {
		objSize, _ := LongestAxisSize(obj)
		if objSize == 0 {
			continue
		}

		factor := refSize / objSize
		obj.Scale = obj.Scale.Scale(factor) // same factor on all 3 axes

		if bake && obj.IsMesh() {
			for i := range obj.Mesh.Vertices {
				obj.Mesh.Vertices[i] = obj.Mesh.Vertices[i].MulElem(obj.Scale)
			}
			obj.Scale = geometry.Vec3{1, 1, 1}
		}
	}
}
