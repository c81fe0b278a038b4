package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Loader loads item definitions from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load scans dir recursively for *.yml and *.yaml documents and returns
// the assembled Catalog. Documents are visited in lexical path order, so
// the catalog's discovery order is deterministic.
func (l *Loader) Load(dir string) (*Catalog, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absDir)
	if err != nil || !info.IsDir() {
		return nil, NewCatalogNotFoundError(dir)
	}

	items := make([]Item, 0)

	walkErr := filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return NewItemParseError(path, err)
		}

		item, err := ParseItem(data, path)
		if err != nil {
			return err
		}

		item.ConfigDir = filepath.Dir(path)
		item.SourceFile = path
		items = append(items, item)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return New(items)
}
