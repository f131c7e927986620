// Package manifest writes a JSON description of the ingested scene so
// downstream tooling can locate collections and objects without opening the
// host document.
package manifest

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/foligraf/autoingest/internal/scene"
)

// ObjectEntry describes one object inside a collection.
type ObjectEntry struct {
	Name     string     `json:"name"`
	Mesh     bool       `json:"mesh"`
	Vertices int        `json:"vertices,omitempty"`
	Parent   string     `json:"parent,omitempty"`
	Location [3]float32 `json:"location"`
	Scale    [3]float32 `json:"scale"`
}

// CollectionEntry describes one top-level collection and its objects.
type CollectionEntry struct {
	Name    string        `json:"name"`
	Visible bool          `json:"visible"`
	Objects []ObjectEntry `json:"objects"`
}

// Manifest is the document root.
type Manifest struct {
	Collections []CollectionEntry `json:"collections"`
}

// Build assembles a manifest for the named collections, in the given order.
// Unknown names are skipped.
func Build(doc *scene.Document, names []string) Manifest {
	var m Manifest
	for _, name := range names {
		col := doc.Collection(name)
		if col == nil {
			continue
		}

		entry := CollectionEntry{Name: name, Visible: true}
		if lc := scene.FindLayerCollection(doc.ViewLayer(), name); lc != nil {
			entry.Visible = !lc.Exclude
		}

		objs := col.Objects()
		sort.Slice(objs, func(i, k int) bool { return objs[i].Name < objs[k].Name })
		for _, obj := range objs {
			oe := ObjectEntry{
				Name:     obj.Name,
				Mesh:     obj.IsMesh(),
				Location: obj.Location,
				Scale:    obj.Scale,
			}
			if obj.IsMesh() {
				oe.Vertices = len(obj.Mesh.Vertices)
			}
			if obj.Parent != nil {
				oe.Parent = obj.Parent.Name
			}
			entry.Objects = append(entry.Objects, oe)
		}
		m.Collections = append(m.Collections, entry)
	}
	return m
}

// Write renders the manifest for the named collections to path.
func Write(path string, doc *scene.Document, names []string) error {
	data, err := json.MarshalIndent(Build(doc, names), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
