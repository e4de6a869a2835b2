package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/bulma"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

const defaultRendererName = bulma.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformers registers transformers that run, in order, on every
// document before the form is built.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithFormOptions forwards options to every form the orchestrator builds.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from descriptor source to rendered
// output. The default registry carries the bulma and tui renderers with
// bulma as the default.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	formOptions     []form.Option
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Source yields the descriptor document.
	Source Source

	// Renderer names the renderer to use. Empty falls back to the
	// orchestrator default.
	Renderer string

	// RenderOptions is forwarded to the renderer. A nil HasIcon picks up the
	// document setting.
	RenderOptions render.RenderOptions
}

// Registry exposes the renderer registry so callers can add renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Build loads and transforms the source document, then constructs a form
// from it. The returned document reflects the applied transformers.
func (o *Orchestrator) Build(ctx context.Context, source Source) (*form.Form, descriptor.Document, error) {
	if ctx == nil {
		return nil, descriptor.Document{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, descriptor.Document{}, err
	}
	if source == nil {
		return nil, descriptor.Document{}, errors.New("orchestrator: source is required")
	}

	doc, err := source.Document(ctx)
	if err != nil {
		return nil, descriptor.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, &doc); err != nil {
			return nil, descriptor.Document{}, fmt.Errorf("orchestrator: transform document: %w", err)
		}
	}

	f, err := form.FromDocument(ctx, doc, o.formOptions...)
	if err != nil {
		return nil, descriptor.Document{}, fmt.Errorf("orchestrator: build form: %w", err)
	}
	o.logger.Debug("form built", "form", f.Name(), "fields", len(f.Fields()))
	return f, doc, nil
}

// Generate builds the form described by req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	f, doc, err := o.Build(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.HasIcon == nil {
		opts.HasIcon = doc.HasIcon
	}
	output, err := renderer.Render(ctx, f.View(), opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves name against the registry. An empty name selects the
// configured default, then the first registered renderer.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry != nil {
		return
	}
	o.registry = render.NewRegistry()
	html, err := bulma.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(html)
	o.registry.MustRegister(tui.New())
}
