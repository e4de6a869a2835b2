package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal sessions. Render prints a
// static summary of a view; Prompt drives a live form through the
// PromptDriver.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	confirmSubmit     bool
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Prompt.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render writes a plain text outline of the view: one line per field with
// its current value, followed by any visible message.
func (r *Renderer) Render(ctx context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := options.WithDefaults()
	messages, orphaned := render.FieldMessages(view, opts.Errors)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", view.Name)
	for _, message := range render.MergeFormErrors(opts.FormErrors, orphaned...) {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	for _, fv := range view.Fields {
		field := fv.Field
		switch field.Mode {
		case model.ModeHTML:
			continue
		case model.ModeSlot:
			if content := opts.Slots[field.SlotName]; content != "" {
				fmt.Fprintf(&b, "  %s\n", content)
			}
			continue
		}
		fmt.Fprintf(&b, "  %s: %s\n", promptLabel(field, opts), fv.State.Value.String())
		for _, message := range messages[field.ID] {
			fmt.Fprintf(&b, "    %s%s\n", r.theme.ErrorPrefix, message)
		}
	}

	status := "invalid"
	if view.Valid {
		status = "valid"
	}
	fmt.Fprintf(&b, "[%s]\n", status)
	return []byte(b.String()), nil
}

func (r *Renderer) serialize(submission form.Submission) ([]byte, error) {
	values := submission.Values
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		submission.Values = values
		return json.Marshal(submission)
	}
}

func encodeForm(values map[string]any) string {
	out := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				out.Add(key, item)
			}
		default:
			out.Set(key, fmt.Sprint(v))
		}
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		switch v := values[key].(type) {
		case []string:
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(v, ", "))
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	return b.String()
}

func promptLabel(field model.Field, opts render.RenderOptions) string {
	label := opts.Translate(field.ID+".label", field.Label)
	if field.Required {
		label += " *"
	}
	return label
}
