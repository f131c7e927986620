package scene

// Collection is a named grouping node. Collections nest and hold objects;
// an object may be linked into several collections, though the ingest
// pipeline enforces single membership for the objects it manages.
type Collection struct {
	Name string

	children []*Collection
	objects  []*Object
}

// Children returns the direct child collections.
func (c *Collection) Children() []*Collection {
	out := make([]*Collection, len(c.children))
	copy(out, c.children)
	return out
}

// Objects returns the directly linked objects.
func (c *Collection) Objects() []*Object {
	out := make([]*Object, len(c.objects))
	copy(out, c.objects)
	return out
}

// LinkObject links o into the collection. Linking twice is a no-op.
func (c *Collection) LinkObject(o *Object) {
	for _, existing := range c.objects {
		if existing == o {
			return
		}
	}
	c.objects = append(c.objects, o)
	o.collections = append(o.collections, c)
}

// UnlinkObject removes o from the collection. Unknown objects are ignored.
func (c *Collection) UnlinkObject(o *Object) {
	for i, existing := range c.objects {
		if existing == o {
			c.objects = append(c.objects[:i], c.objects[i+1:]...)
			break
		}
	}
	for i, col := range o.collections {
		if col == c {
			o.collections = append(o.collections[:i], o.collections[i+1:]...)
			break
		}
	}
}

// HasChild reports whether child is a direct child of the collection.
func (c *Collection) HasChild(child *Collection) bool {
	for _, existing := range c.children {
		if existing == child {
			return true
		}
	}
	return false
}
