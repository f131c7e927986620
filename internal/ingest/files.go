package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// meshExt is the one file extension the wrapped importer handles.
const meshExt = ".obj"

// CollectMeshFiles recursively scans root for OBJ files and returns their
// paths sorted lexicographically, so repeated scans of the same tree
// process files in the same order.
func CollectMeshFiles(root string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), meshExt) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
