package geometry

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// BoxForPoints returns the smallest box containing all points.
// An empty point set yields the zero box.
func BoxForPoints(points []Vec3) Box {
	if len(points) == 0 {
		return Box{}
	}
	box := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Corners returns the 8 corner points of the box.
func (b Box) Corners() [8]Vec3 {
	x0, y0, z0 := b.Min[0], b.Min[1], b.Min[2]
	x1, y1, z1 := b.Max[0], b.Max[1], b.Max[2]
	return [8]Vec3{
		{x0, y0, z0},
		{x0, y0, z1},
		{x0, y1, z0},
		{x0, y1, z1},
		{x1, y0, z0},
		{x1, y0, z1},
		{x1, y1, z0},
		{x1, y1, z1},
	}
}

// Center returns the arithmetic mean of the 8 corners.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis span of the box.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// LongestAxis returns the largest per-axis span and which axis it is
// (0, 1, or 2). Ties resolve to the lowest axis index.
func (b Box) LongestAxis() (float32, int) {
	size := b.Size()
	axis := 0
	for i := 1; i < 3; i++ {
		if size[i] > size[axis] {
			axis = i
		}
	}
	return size[axis], axis
}
