package geometry

import "github.com/chewxy/math32"

// Mat4 is a 4x4 row-major transform matrix.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v[0],
		0, 1, 0, v[1],
		0, 0, 1, v[2],
		0, 0, 0, 1,
	}
}

// ScaleMat returns a per-axis scale matrix.
func ScaleMat(v Vec3) Mat4 {
	return Mat4{
		v[0], 0, 0, 0,
		0, v[1], 0, 0,
		0, 0, v[2], 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation about the X axis by angle radians.
func RotateX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation about the Y axis by angle radians.
func RotateY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation about the Z axis by angle radians.
func RotateZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulPosition transforms a point (w=1).
func (a Mat4) MulPosition(v Vec3) Vec3 {
	return Vec3{
		a[0]*v[0] + a[1]*v[1] + a[2]*v[2] + a[3],
		a[4]*v[0] + a[5]*v[1] + a[6]*v[2] + a[7],
		a[8]*v[0] + a[9]*v[1] + a[10]*v[2] + a[11],
	}
}

// MulDirection transforms a direction (w=0).
func (a Mat4) MulDirection(v Vec3) Vec3 {
	return Vec3{
		a[0]*v[0] + a[1]*v[1] + a[2]*v[2],
		a[4]*v[0] + a[5]*v[1] + a[6]*v[2],
		a[8]*v[0] + a[9]*v[1] + a[10]*v[2],
	}
}

// TRS composes translate * rotateZ * rotateY * rotateX * scale, the
// object-transform convention used by the scene document (XYZ euler).
func TRS(location, rotation, scale Vec3) Mat4 {
	m := Translate(location)
	m = m.Mul(RotateZ(rotation[2]))
	m = m.Mul(RotateY(rotation[1]))
	m = m.Mul(RotateX(rotation[0]))
	return m.Mul(ScaleMat(scale))
}
