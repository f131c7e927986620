package ingest

import (
	"fmt"

	"github.com/foligraf/autoingest/internal/scene"
)

// UniqueCollectionName returns base if no collection holds that name,
// otherwise the first free of base_001 … base_999.
func UniqueCollectionName(doc *scene.Document, base string) (string, error) {
	if !doc.HasCollection(base) {
		return base, nil
	}
	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s_%03d", base, i)
		if !doc.HasCollection(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNameExhausted, base)
}

// DeleteCollectionRecursive removes a collection, all its children, and
// every object they contain.
func DeleteCollectionRecursive(doc *scene.Document, col *scene.Collection) {
	for _, child := range col.Children() {
		DeleteCollectionRecursive(doc, child)
	}
	for _, obj := range col.Objects() {
		doc.RemoveObject(obj)
	}
	doc.RemoveCollection(col)
}

// SetCollectionVisibility flips the view-layer exclusion flag for the named
// collection. A collection absent from the view layer is a no-op, not an
// error.
func SetCollectionVisibility(doc *scene.Document, name string, visible bool) {
	lc := scene.FindLayerCollection(doc.ViewLayer(), name)
	if lc != nil {
		doc.SetExclude(lc, !visible)
	}
}

// MoveToCollection unlinks the object from every collection it belongs to
// and links it into exactly col.
func MoveToCollection(obj *scene.Object, col *scene.Collection) {
	for _, c := range obj.UsersCollection() {
		c.UnlinkObject(obj)
	}
	col.LinkObject(obj)
}
