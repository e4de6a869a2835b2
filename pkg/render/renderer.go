package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Renderer turns a form view into a byte representation (HTML, terminal
// transcript, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}
