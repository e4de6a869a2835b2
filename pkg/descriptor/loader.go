package descriptor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads and parses a descriptor document from disk. When the document
// does not declare a name, the file name without extension is used.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return parseNamed(data, path)
}

// LoadFS reads a single descriptor document from fsys.
func LoadFS(fsys fs.FS, path string) (Document, error) {
	if fsys == nil {
		return Document{}, fmt.Errorf("descriptor: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return parseNamed(data, path)
}

// LoadDir walks fsys and parses every JSON/YAML document, keyed by form name.
// Duplicate names are rejected.
func LoadDir(fsys fs.FS) (map[string]Document, error) {
	docs := make(map[string]Document)
	if fsys == nil {
		return docs, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}
		doc, err := LoadFS(fsys, path)
		if err != nil {
			return err
		}
		if _, exists := docs[doc.Name]; exists {
			return fmt.Errorf("descriptor: duplicate form %q (file %s)", doc.Name, path)
		}
		docs[doc.Name] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func parseNamed(data []byte, path string) (Document, error) {
	doc, err := Parse(data, path)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		base := filepath.Base(path)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
