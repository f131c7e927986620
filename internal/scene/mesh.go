// Package scene provides an in-memory scene document: a registry of objects
// and collections, a view layer with per-collection exclusion, and material
// node graphs. It stands in for the host application's scene graph so the
// ingest pipeline can run and be tested without one.
package scene

import "github.com/foligraf/autoingest/internal/geometry"

// Mesh holds vertex data for a mesh object.
type Mesh struct {
	Name     string
	Vertices []geometry.Vec3
}

// BoundingBox returns the local-space bounding box of the vertex data.
// An empty mesh yields the zero box.
func (m *Mesh) BoundingBox() geometry.Box {
	return geometry.BoxForPoints(m.Vertices)
}
