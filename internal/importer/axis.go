package importer

import (
	"fmt"

	"github.com/foligraf/autoingest/internal/geometry"
)

// UpAxis selects which file-space axis points up in the scene. Forward is
// deduced from up, so invalid axis pairs cannot be configured.
type UpAxis string

const (
	UpX    UpAxis = "X"
	UpY    UpAxis = "Y"
	UpZ    UpAxis = "Z"
	UpNegX UpAxis = "-X"
	UpNegY UpAxis = "-Y"
	UpNegZ UpAxis = "-Z"
)

// UpAxes lists the valid choices in display order.
var UpAxes = []UpAxis{UpX, UpY, UpZ, UpNegX, UpNegY, UpNegZ}

// ParseUpAxis validates an axis string.
func ParseUpAxis(s string) (UpAxis, error) {
	for _, a := range UpAxes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

func (a UpAxis) vector() geometry.Vec3 {
	switch a {
	case UpX:
		return geometry.Vec3{1, 0, 0}
	case UpY:
		return geometry.Vec3{0, 1, 0}
	case UpZ:
		return geometry.Vec3{0, 0, 1}
	case UpNegX:
		return geometry.Vec3{-1, 0, 0}
	case UpNegY:
		return geometry.Vec3{0, -1, 0}
	case UpNegZ:
		return geometry.Vec3{0, 0, -1}
	}
	return geometry.Vec3{0, 0, 1}
}

func (a UpAxis) axisIndex() int {
	switch a {
	case UpX, UpNegX:
		return 0
	case UpY, UpNegY:
		return 1
	}
	return 2
}

// ConversionMatrix returns the rotation taking file coordinates to scene
// coordinates, with the chosen file axis mapped to scene +Z. Forward is
// deduced as the axis following up in X, Y, Z cyclic order, looking down it,
// and the third axis closes a right-handed basis.
func (a UpAxis) ConversionMatrix() geometry.Mat4 {
	up := a.vector()

	var forward geometry.Vec3
	forward[(a.axisIndex()+1)%3] = -1

	// right = forward x up keeps the basis right-handed for every one of
	// the six up choices.
	right := cross(forward, up)

	return geometry.Mat4{
		right[0], right[1], right[2], 0,
		forward[0], forward[1], forward[2], 0,
		up[0], up[1], up[2], 0,
		0, 0, 0, 1,
	}
}

func cross(a, b geometry.Vec3) geometry.Vec3 {
	return geometry.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
