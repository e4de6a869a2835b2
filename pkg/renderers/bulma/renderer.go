package bulma

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynform/pkg/render/template"
	"github.com/goliatone/go-dynform/pkg/render/template/pongo"
)

// Name is the registry key of the Bulma renderer.
const Name = "bulma"

// DefaultIconClass is the Font Awesome icon shown next to invalid fields.
const DefaultIconClass = "fas fa-exclamation-triangle"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	iconClass        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide the same templates/*.tpl names as TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithIconClass replaces the icon classes rendered next to invalid fields.
func WithIconClass(class string) Option {
	return func(cfg *config) {
		if class = strings.TrimSpace(class); class != "" {
			cfg.iconClass = class
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy replaces the sanitiser applied to html descriptors.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// DefaultPolicy is the UGC policy extended with class attributes, which html
// fragments use for Bulma styling.
func DefaultPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	return policy
}

// Renderer produces Bulma flavoured HTML for a form view.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the Bulma renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), iconClass: DefaultIconClass}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = DefaultPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		source := pongo.WithFS(cfg.templateFS)
		if cfg.templateDir != "" {
			source = pongo.WithBaseDir(cfg.templateDir)
		}
		engine, err := pongo.New(source, pongo.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("bulma renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(map[string]any{"iconClass": cfg.iconClass}); err != nil {
		return nil, fmt.Errorf("bulma renderer: template globals: %w", err)
	}

	return &Renderer{templates: renderer, policy: cfg.policy}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the complete form element: fields in order, grouped rows
// wrapped in a field-body, then submit and reset controls.
func (r *Renderer) Render(ctx context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("bulma renderer: template renderer is nil")
	}
	opts := options.WithDefaults()

	messages, orphaned := render.FieldMessages(view, opts.Errors)

	rows := make([]map[string]any, 0, len(view.Fields))
	for i, fv := range view.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		markup, err := r.renderField(fv, messages[fv.Field.ID], opts)
		if err != nil {
			return nil, err
		}

		row := fv.Field.Row
		if row > 0 && i > 0 && view.Fields[i-1].Field.Row == row {
			last := rows[len(rows)-1]
			last["fields"] = append(last["fields"].([]string), markup)
			continue
		}
		rows = append(rows, map[string]any{
			"grouped": row > 0,
			"fields":  []string{markup},
		})
	}

	hidden := make([]map[string]string, 0, len(opts.Hidden))
	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]string{"name": field.Name, "value": field.Value})
	}

	result, err := r.templates.RenderTemplate("templates/form", map[string]any{
		"name":           view.Name,
		"action":         opts.Action,
		"method":         opts.Method,
		"hidden":         hidden,
		"formErrors":     render.MergeFormErrors(opts.FormErrors, orphaned...),
		"rows":           rows,
		"submitLabel":    opts.Translate("form.submit", opts.SubmitLabel),
		"resetLabel":     opts.Translate("form.reset", opts.ResetLabel),
		"submitDisabled": !view.Valid && !opts.EnableSubmit,
	})
	if err != nil {
		return nil, fmt.Errorf("bulma renderer: render form: %w", err)
	}
	return []byte(result), nil
}
