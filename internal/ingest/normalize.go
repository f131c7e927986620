package ingest

import (
	"github.com/foligraf/autoingest/internal/geometry"
	"github.com/foligraf/autoingest/internal/scene"
)

// CenterOrigin moves the object's origin to its bounding-box center by
// editing data directly, with no scene-graph refresh or selection
// side-effects.
//
// Strategy:
//  1. Compute the bbox center in local space (mean of the 8 corners).
//  2. Shift all vertices by -center so geometry is centred on the origin.
//  3. Compensate by moving the object's location to the old world-space
//     position of that center, so nothing moves visually.
//
// Objects without mesh data or without vertices are left untouched.
func CenterOrigin(obj *scene.Object) {
	if !obj.IsMesh() || len(obj.Mesh.Vertices) == 0 {
		return
	}

	corners := obj.BoundBox().Corners()
	var center geometry.Vec3
	for _, c := range corners {
		center = center.Add(c)
	}
	center = center.Scale(1.0 / 8.0)

	world := obj.MatrixWorld()

	for i := range obj.Mesh.Vertices {
		obj.Mesh.Vertices[i] = obj.Mesh.Vertices[i].Sub(center)
	}

	obj.Location = world.MulPosition(center)
}
