package scene

import "github.com/foligraf/autoingest/internal/geometry"

// EmptyDisplay selects how a non-mesh object is drawn.
type EmptyDisplay string

const (
	EmptyPlainAxes EmptyDisplay = "PLAIN_AXES"
	EmptySphere    EmptyDisplay = "SPHERE"
)

// Object is a scene object: either a mesh object (Mesh != nil) or an empty
// used as a transform anchor.
type Object struct {
	Name         string
	Mesh         *Mesh // nil for empties
	EmptyDisplay EmptyDisplay

	Location geometry.Vec3
	Rotation geometry.Vec3 // XYZ euler, radians
	Scale    geometry.Vec3

	// Parent, when set, contributes to the world transform through
	// ParentInverse (the correction captured at parenting time).
	Parent        *Object
	ParentInverse geometry.Mat4

	Slots []*MaterialSlot

	collections []*Collection
}

// IsMesh reports whether the object carries mesh data.
func (o *Object) IsMesh() bool { return o.Mesh != nil }

// MatrixBasis returns the object's local transform.
func (o *Object) MatrixBasis() geometry.Mat4 {
	return geometry.TRS(o.Location, o.Rotation, o.Scale)
}

// MatrixWorld returns the object's world transform:
// parent world * parent inverse * local basis.
func (o *Object) MatrixWorld() geometry.Mat4 {
	basis := o.MatrixBasis()
	if o.Parent == nil {
		return basis
	}
	return o.Parent.MatrixWorld().Mul(o.ParentInverse).Mul(basis)
}

// BoundBox returns the local-space bounding box of the object's mesh data.
// Objects without mesh data have a zero box.
func (o *Object) BoundBox() geometry.Box {
	if o.Mesh == nil {
		return geometry.Box{}
	}
	return o.Mesh.BoundingBox()
}

// UsersCollection returns the collections the object is linked into.
func (o *Object) UsersCollection() []*Collection {
	out := make([]*Collection, len(o.collections))
	copy(out, o.collections)
	return out
}
