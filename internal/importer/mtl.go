package importer

import (
	"bufio"
	"os"
	"strings"

	"github.com/foligraf/autoingest/internal/scene"
)

// loadMTL parses an MTL sidecar and registers one material per newmtl
// statement, building a principled-style node graph for each. A material
// with a diffuse map gets an image-texture node wired into Base Color.
// Missing or unreadable sidecars are logged and skipped; the OBJ still
// imports.
func (imp *OBJ) loadMTL(path string, doc *scene.Document, materials map[string]*scene.Material) {
	f, err := os.Open(path)
	if err != nil {
		imp.log.Warn("mtl sidecar not readable", "path", path, "error", err)
		return
	}
	defer f.Close()

	var current *scene.Material
	var currentBSDF *scene.Node

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				continue
			}
			current = doc.NewMaterial(fields[1])
			current.NodeTree, currentBSDF = newPrincipledTree()
			materials[fields[1]] = current
		case "map_Kd":
			if current == nil || len(fields) < 2 {
				continue
			}
			tex := current.NodeTree.NewNode(scene.NodeTexImage, fields[len(fields)-1],
				nil, []string{"Color", "Alpha"})
			current.NodeTree.NewLink(tex.Output("Color"), currentBSDF.Input("Base Color"))
		}
	}
	if err := scanner.Err(); err != nil {
		imp.log.Warn("mtl sidecar truncated", "path", path, "error", err)
	}
}

// newPrincipledTree builds the minimal shading graph the host's importer
// produces: a principled BSDF feeding the material output.
func newPrincipledTree() (*scene.NodeTree, *scene.Node) {
	tree := scene.NewNodeTree()
	bsdf := tree.NewNode(scene.NodeBSDFPrincipled, "Principled BSDF",
		[]string{"Base Color", "Metallic", "Roughness", "Emission Color", "Emission Strength"},
		[]string{"BSDF"})
	out := tree.NewNode(scene.NodeOutputMaterial, "Material Output",
		[]string{"Surface"}, nil)
	tree.NewLink(bsdf.Output("BSDF"), out.Input("Surface"))
	return tree, bsdf
}
