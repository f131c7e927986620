package ingest

import (
	"github.com/foligraf/autoingest/internal/importer"
	"github.com/foligraf/autoingest/internal/scene"
)

// Settings is the per-job option snapshot. The runner copies it at job
// start; later edits to the caller's value never affect a running job.
type Settings struct {
	// UpAxis is handed to the importer; forward is deduced from it.
	UpAxis importer.UpAxis

	// CenterPivots moves each imported object's origin to its geometric
	// center before positioning.
	CenterPivots bool

	// UseScaleRef scales every imported object so its longest axis
	// matches Reference.
	UseScaleRef bool
	Reference   *scene.Object

	// ApplyScale bakes the matched scale into vertex coordinates. Only
	// meaningful when UseScaleRef is set.
	ApplyScale bool

	// ReplaceExisting deletes a same-named collection before re-import
	// instead of suffixing the new one.
	ReplaceExisting bool

	// DiffuseAsEmissive rewires each material's diffuse input into its
	// emission color after import.
	DiffuseAsEmissive bool
}

// DefaultSettings returns the option defaults: Y up, centered pivots, no
// reference scaling, scale baking on, no replace, no emissive transfer.
func DefaultSettings() Settings {
	return Settings{
		UpAxis:       importer.UpY,
		CenterPivots: true,
		ApplyScale:   true,
	}
}
