package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/foligraf/autoingest/internal/geometry"
	"github.com/foligraf/autoingest/internal/importer"
	"github.com/foligraf/autoingest/internal/scene"
)

// Importer imports one mesh file into the document and returns the objects
// it created, in file order. An empty set with a nil error means the file
// held no geometry.
type Importer interface {
	Import(ctx context.Context, doc *scene.Document, path string, up importer.UpAxis) ([]*scene.Object, error)
}

// processFile runs the full per-file pipeline: name resolution, import,
// pivot centering, positioning, reference scaling, material rewiring,
// pivot-empty creation, parenting, collection assignment, and the
// visibility swap. Collections created here are appended to the job's list
// so the next file can hide this one before showing its own.
func (r *Runner) processFile(ctx context.Context, j *job, path string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := r.doc
	settings := j.settings

	// Name collision handling before the import touches the document.
	var colName string
	if settings.ReplaceExisting && doc.HasCollection(stem) {
		DeleteCollectionRecursive(doc, doc.Collection(stem))
		colName = stem
	} else {
		var err error
		colName, err = UniqueCollectionName(doc, stem)
		if err != nil {
			return "", err
		}
	}

	created, err := r.importer.Import(ctx, doc, path, settings.UpAxis)
	if err != nil {
		return "", err
	}
	if len(created) == 0 {
		r.log.Debug("no objects in file", "path", path)
		return "", nil
	}

	if settings.CenterPivots {
		for _, obj := range created {
			CenterOrigin(obj)
		}
	}

	// Known baseline regardless of where the importer left things.
	for _, obj := range created {
		obj.Location = geometry.Vec3{}
	}

	if settings.UseScaleRef && settings.Reference != nil {
		MatchToReference(created, settings.Reference, settings.ApplyScale)
	}

	if settings.DiffuseAsEmissive {
		DiffuseAsEmissive(created)
	}

	// Synthetic pivot. Linked into the scene root so it is reachable; it
	// moves into the new collection below.
	empty := doc.NewObject("EMPTY_"+stem, nil)
	empty.EmptyDisplay = scene.EmptyPlainAxes
	doc.RootCollection().LinkObject(empty)

	// The pivot sits at the world origin with no rotation or scale, so an
	// identity parent-inverse preserves each object's world transform.
	for _, obj := range created {
		obj.Parent = empty
		obj.ParentInverse = geometry.Identity()
	}

	col, err := doc.NewCollection(colName)
	if err != nil {
		return "", err
	}
	doc.LinkChild(doc.RootCollection(), col)

	MoveToCollection(empty, col)
	for _, obj := range created {
		MoveToCollection(obj, col)
	}

	// O(1) visibility bookkeeping: collections start visible, every one
	// before the previous is already hidden, so only the previous needs
	// touching.
	if len(j.created) > 0 {
		SetCollectionVisibility(doc, j.created[len(j.created)-1], false)
	}
	SetCollectionVisibility(doc, colName, true)
	j.created = append(j.created, colName)

	r.log.Debug("file processed", "path", path, "collection", colName, "objects", len(created))
	return colName, nil
}
