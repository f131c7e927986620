package scene

import (
	"fmt"

	"github.com/foligraf/autoingest/internal/geometry"
)

// Preferences holds the process-wide host settings the ingest driver
// touches. UndoRecording mirrors the host's global undo flag: the driver
// snapshots it, disables it for the batch, and restores it on exit.
type Preferences struct {
	UndoRecording bool
}

// Document is the scene: an ordered object registry, a named collection
// registry rooted at the scene collection, the view layer mirroring that
// hierarchy, and a material registry.
type Document struct {
	Preferences Preferences

	objects     []*Object
	root        *Collection
	collections map[string]*Collection
	materials   map[string]*Material

	viewRoot *LayerCollection
	exclude  map[*Collection]bool
}

// NewDocument returns an empty scene document with undo recording enabled.
func NewDocument() *Document {
	root := &Collection{Name: "Scene Collection"}
	return &Document{
		Preferences: Preferences{UndoRecording: true},
		root:        root,
		collections: make(map[string]*Collection),
		materials:   make(map[string]*Material),
		viewRoot:    &LayerCollection{Collection: root},
		exclude:     make(map[*Collection]bool),
	}
}

// RootCollection returns the scene collection. It is not part of the named
// registry and cannot be removed.
func (d *Document) RootCollection() *Collection { return d.root }

// Objects returns all registered objects in creation order.
func (d *Document) Objects() []*Object {
	out := make([]*Object, len(d.objects))
	copy(out, d.objects)
	return out
}

// NewObject registers a new object. A nil mesh creates an empty.
func (d *Document) NewObject(name string, mesh *Mesh) *Object {
	o := &Object{
		Name:          name,
		Mesh:          mesh,
		Scale:         geometry.Vec3{1, 1, 1},
		ParentInverse: geometry.Identity(),
	}
	d.objects = append(d.objects, o)
	return o
}

// RemoveObject unlinks the object from every collection and deletes it from
// the registry. Objects parented to it lose their parent.
func (d *Document) RemoveObject(o *Object) {
	for _, col := range o.UsersCollection() {
		col.UnlinkObject(o)
	}
	for _, other := range d.objects {
		if other.Parent == o {
			other.Parent = nil
			other.ParentInverse = geometry.Identity()
		}
	}
	for i, existing := range d.objects {
		if existing == o {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			break
		}
	}
}

// HasCollection reports whether a named collection exists.
func (d *Document) HasCollection(name string) bool {
	_, ok := d.collections[name]
	return ok
}

// Collection returns the named collection, or nil.
func (d *Document) Collection(name string) *Collection {
	return d.collections[name]
}

// NewCollection registers a new named collection. The caller links it into
// the hierarchy separately.
func (d *Document) NewCollection(name string) (*Collection, error) {
	if _, ok := d.collections[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionExists, name)
	}
	c := &Collection{Name: name}
	d.collections[name] = c
	return c, nil
}

// RemoveCollection unlinks the collection from every parent and deletes it
// from the registry. Contained objects and child collections are untouched.
func (d *Document) RemoveCollection(c *Collection) {
	d.unlinkEverywhere(d.root, c)
	for _, other := range d.collections {
		d.unlinkEverywhere(other, c)
	}
	delete(d.collections, c.Name)
	delete(d.exclude, c)
	d.syncViewLayer()
}

func (d *Document) unlinkEverywhere(parent, child *Collection) {
	for i, existing := range parent.children {
		if existing == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

// LinkChild links child under parent and mirrors it into the view layer.
func (d *Document) LinkChild(parent, child *Collection) {
	if parent.HasChild(child) {
		return
	}
	parent.children = append(parent.children, child)
	d.syncViewLayer()
}

// UnlinkChild removes child from parent's children.
func (d *Document) UnlinkChild(parent, child *Collection) error {
	for i, existing := range parent.children {
		if existing == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			d.syncViewLayer()
			return nil
		}
	}
	return fmt.Errorf("%w: %q under %q", ErrNotLinked, child.Name, parent.Name)
}

// ViewLayer returns the root layer node.
func (d *Document) ViewLayer() *LayerCollection { return d.viewRoot }

// SetExclude sets the view-layer exclusion flag for a collection.
func (d *Document) SetExclude(lc *LayerCollection, exclude bool) {
	lc.Exclude = exclude
	d.exclude[lc.Collection] = exclude
}

// ViewLayerUpdate flushes pending hierarchy changes into the layer tree.
// Exclusion flags survive by collection identity.
func (d *Document) ViewLayerUpdate() { d.syncViewLayer() }

func (d *Document) syncViewLayer() {
	d.viewRoot = syncLayer(d.root, d.exclude)
}

// NewMaterial registers a material, suffixing the name numerically on
// collision the way the host does (.001, .002, ...).
func (d *Document) NewMaterial(name string) *Material {
	final := name
	for i := 1; ; i++ {
		if _, ok := d.materials[final]; !ok {
			break
		}
		final = fmt.Sprintf("%s.%03d", name, i)
	}
	m := &Material{Name: final}
	d.materials[final] = m
	return m
}

// Material returns the named material, or nil.
func (d *Document) Material(name string) *Material {
	return d.materials[name]
}
