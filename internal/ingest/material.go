package ingest

import "github.com/foligraf/autoingest/internal/scene"

// DiffuseAsEmissive rewires, for every principled BSDF found in every
// material of the given objects, the socket feeding Base Color into the
// emission color input as well (shared link, no texture duplication), and
// sets Emission Strength to 1.
//
// All principled nodes are visited, not just the first, so multi-material
// objects and grouped imports that spawn several shaders are fully covered.
// Hosts have shipped the emission input under two names; both are tried.
// Re-running on an already-wired graph recreates the same link.
func DiffuseAsEmissive(objects []*scene.Object) {
	for _, obj := range objects {
		if !obj.IsMesh() {
			continue
		}
		for _, slot := range obj.Slots {
			mat := slot.Material
			if mat == nil || mat.NodeTree == nil {
				continue
			}
			rewireTree(mat.NodeTree)
		}
	}
}

func rewireTree(tree *scene.NodeTree) {
	for _, node := range tree.Nodes() {
		if node.Type != scene.NodeBSDFPrincipled {
			continue
		}

		baseColor := node.Input("Base Color")
		if baseColor == nil || !baseColor.IsLinked() {
			continue
		}
		from := baseColor.FromSocket()

		emission := node.Input("Emission Color")
		if emission == nil {
			emission = node.Input("Emission")
		}
		if emission == nil {
			continue
		}

		tree.NewLink(from, emission)

		if strength := node.Input("Emission Strength"); strength != nil {
			strength.Default = 1.0
		}
	}
}
