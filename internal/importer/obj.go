// Package importer wraps the OBJ mesh-file importer: it parses OBJ (and MTL
// sidecar) files and materializes the result as objects in a scene document,
// returning the created set directly.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/foligraf/autoingest/internal/geometry"
	"github.com/foligraf/autoingest/internal/scene"
)

// OBJ imports Wavefront OBJ files into a scene document.
type OBJ struct {
	log *slog.Logger
}

// NewOBJ creates an OBJ importer.
func NewOBJ(log *slog.Logger) *OBJ {
	if log == nil {
		log = slog.Default()
	}
	return &OBJ{log: log}
}

// objGroup accumulates parse state for one named object in the file.
type objGroup struct {
	name      string
	materials []*scene.Material
	seen      map[int]bool
	vertices  []geometry.Vec3
}

// Import parses the OBJ file at path, creates one scene object per named
// group, links each into the scene root collection, and returns the created
// set in file order. Vertex data is converted into scene coordinates using
// the up-axis choice. A file with no geometry yields an empty set and no
// error.
func (imp *OBJ) Import(ctx context.Context, doc *scene.Document, path string, up UpAxis) ([]*scene.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	groups, err := imp.parse(f, filepath.Dir(path), stem, doc, up)
	if err != nil {
		return nil, err
	}

	var created []*scene.Object
	for _, g := range groups {
		if len(g.vertices) == 0 {
			continue
		}
		obj := doc.NewObject(g.name, &scene.Mesh{Name: g.name, Vertices: g.vertices})
		for _, mat := range g.materials {
			obj.Slots = append(obj.Slots, &scene.MaterialSlot{Material: mat})
		}
		doc.RootCollection().LinkObject(obj)
		created = append(created, obj)
	}

	imp.log.Debug("obj imported", "path", path, "objects", len(created))
	return created, nil
}

func (imp *OBJ) parse(r io.Reader, dir, stem string, doc *scene.Document, up UpAxis) ([]*objGroup, error) {
	conv := up.ConversionMatrix()
	materials := make(map[string]*scene.Material)

	vs := make([]geometry.Vec3, 1, 1024) // 1-based indexing
	var groups []*objGroup
	var current *objGroup

	// Lazily opened default group for files without o/g statements.
	group := func() *objGroup {
		if current == nil {
			current = &objGroup{name: stem, seen: make(map[int]bool)}
			groups = append(groups, current)
		}
		return current
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			vs = append(vs, geometry.Vec3{pf(fields[1]), pf(fields[2]), pf(fields[3])})
		case "o", "g":
			name := stem
			if len(fields) > 1 {
				name = stem + "_" + fields[1]
			}
			current = &objGroup{name: name, seen: make(map[int]bool)}
			groups = append(groups, current)
		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			g := group()
			if mat, ok := materials[fields[1]]; ok {
				g.addMaterial(mat)
			}
		case "mtllib":
			if len(fields) < 2 {
				continue
			}
			imp.loadMTL(filepath.Join(dir, fields[1]), doc, materials)
		case "f":
			g := group()
			for _, arg := range fields[1:] {
				idx := fixIndex(strings.SplitN(arg+"/", "/", 2)[0], len(vs))
				if idx <= 0 || idx >= len(vs) || g.seen[idx] {
					continue
				}
				g.seen[idx] = true
				g.vertices = append(g.vertices, conv.MulPosition(vs[idx]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	// No faces anywhere: treat the raw vertex list as one object so
	// point-only files still import.
	if len(vs) > 1 && !anyVertices(groups) {
		g := group()
		for _, v := range vs[1:] {
			g.vertices = append(g.vertices, conv.MulPosition(v))
		}
	}

	return groups, nil
}

func anyVertices(groups []*objGroup) bool {
	for _, g := range groups {
		if len(g.vertices) > 0 {
			return true
		}
	}
	return false
}

func (g *objGroup) addMaterial(mat *scene.Material) {
	for _, existing := range g.materials {
		if existing == mat {
			return
		}
	}
	g.materials = append(g.materials, mat)
}

// pf parses a float without error handling; malformed coordinates become 0.
func pf(s string) float32 {
	f, _ := strconv.ParseFloat(s, 32)
	return float32(f)
}

// fixIndex resolves OBJ 1-based and negative vertex indices.
func fixIndex(value string, length int) int {
	if value == "" {
		return 0
	}
	parsed, _ := strconv.Atoi(value)
	if parsed < 0 {
		return parsed + length
	}
	return parsed
}
