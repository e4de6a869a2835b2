package orchestrator

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/openapi"
)

// Source yields the descriptor document a form is built from.
type Source interface {
	Document(ctx context.Context) (descriptor.Document, error)
}

// SourceFunc adapts plain functions to the Source interface.
type SourceFunc func(ctx context.Context) (descriptor.Document, error)

// Document executes the wrapped function.
func (fn SourceFunc) Document(ctx context.Context) (descriptor.Document, error) {
	return fn(ctx)
}

// DocumentSource returns doc unchanged.
func DocumentSource(doc descriptor.Document) Source {
	return SourceFunc(func(ctx context.Context) (descriptor.Document, error) {
		if err := ctx.Err(); err != nil {
			return descriptor.Document{}, err
		}
		return doc, nil
	})
}

// FileSource reads a JSON or YAML descriptor document from disk.
func FileSource(path string) Source {
	return SourceFunc(func(ctx context.Context) (descriptor.Document, error) {
		if err := ctx.Err(); err != nil {
			return descriptor.Document{}, err
		}
		return descriptor.LoadFile(path)
	})
}

// FSSource reads a descriptor document from fsys.
func FSSource(fsys fs.FS, path string) Source {
	return SourceFunc(func(ctx context.Context) (descriptor.Document, error) {
		if err := ctx.Err(); err != nil {
			return descriptor.Document{}, err
		}
		return descriptor.LoadFS(fsys, path)
	})
}

// OpenAPISource maps the request body of operationID in an OpenAPI document.
// A nil importer uses the defaults.
func OpenAPISource(data []byte, operationID string, importer *openapi.Importer) Source {
	if importer == nil {
		importer = openapi.NewImporter()
	}
	return SourceFunc(func(ctx context.Context) (descriptor.Document, error) {
		return importer.Descriptors(ctx, data, operationID)
	})
}
