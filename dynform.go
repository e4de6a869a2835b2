// Package dynform builds forms from declarative field descriptors, tracks
// their validation state and renders them as Bulma HTML or terminal prompts.
//
// Most callers start with Generate or NewOrchestrator; the sub packages stay
// available for finer control.
package dynform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/bulma"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Document aliases descriptor.Document.
type Document = descriptor.Document

// Submission aliases form.Submission.
type Submission = form.Submission

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewForm builds a form from an in-memory document.
func NewForm(ctx context.Context, doc Document, options ...form.Option) (*form.Form, error) {
	return form.FromDocument(ctx, doc, options...)
}

// Generate loads the document from source, builds its form and renders it
// with the named renderer ("bulma" when empty).
func Generate(ctx context.Context, source orchestrator.Source, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:        source,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// GenerateFile renders the descriptor document stored at path.
func GenerateFile(ctx context.Context, path, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return Generate(ctx, orchestrator.FileSource(path), rendererName, opts, options...)
}

// EmbeddedTemplates exposes the built-in Bulma templates so callers can copy
// or override them.
func EmbeddedTemplates() fs.FS {
	return bulma.TemplatesFS()
}
