package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/descriptor"
)

// Transformer mutates a descriptor document before the form is built.
// Implementations can relabel fields, tweak constraints or drop fields.
type Transformer interface {
	Transform(ctx context.Context, doc *descriptor.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *descriptor.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *descriptor.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document. Fields are addressed by their original label:
//
//	name: signup
//	hasIcon: false
//	fields:
//	  First Name:
//	    label: Given name
//	    help: As printed on your passport
//	  Phone:
//	    remove: true
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Name                 string                `yaml:"name"`
	ResetFormAfterSubmit *bool                 `yaml:"resetFormAfterSubmit"`
	HasIcon              *bool                 `yaml:"hasIcon"`
	Fields               map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label       string `yaml:"label"`
	Help        string `yaml:"help"`
	Placeholder string `yaml:"placeholder"`
	Value       string `yaml:"value"`
	ParentClass string `yaml:"parentClass"`
	Required    *bool  `yaml:"required"`
	Remove      bool   `yaml:"remove"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto doc. Patching a label the document does
// not contain is an error.
func (t *PresetTransformer) Transform(ctx context.Context, doc *descriptor.Document) error {
	if doc == nil {
		return errors.New("preset transformer: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if name := strings.TrimSpace(t.document.Name); name != "" {
		doc.Name = name
	}
	if t.document.ResetFormAfterSubmit != nil {
		doc.ResetFormAfterSubmit = *t.document.ResetFormAfterSubmit
	}
	if t.document.HasIcon != nil {
		doc.HasIcon = t.document.HasIcon
	}

	seen := make(map[string]bool, len(t.document.Fields))
	doc.Fields = patchDescriptors(doc.Fields, t.document.Fields, seen)
	for label := range t.document.Fields {
		if !seen[label] {
			return fmt.Errorf("preset transformer: field %q not found", label)
		}
	}
	return nil
}

func patchDescriptors(list []descriptor.Descriptor, patches map[string]fieldPatch, seen map[string]bool) []descriptor.Descriptor {
	out := make([]descriptor.Descriptor, 0, len(list))
	for _, item := range list {
		switch d := item.(type) {
		case descriptor.Field:
			patch, ok := patches[d.Label]
			if !ok {
				out = append(out, d)
				continue
			}
			seen[d.Label] = true
			if patch.Remove {
				continue
			}
			out = append(out, applyFieldPatch(d, patch))
		case descriptor.Group:
			if group := patchDescriptors(d, patches, seen); len(group) > 0 {
				out = append(out, descriptor.Group(group))
			}
		default:
			out = append(out, item)
		}
	}
	return out
}

func applyFieldPatch(field descriptor.Field, patch fieldPatch) descriptor.Field {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Help != "" {
		field.Help = patch.Help
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Value != "" {
		field.Value = patch.Value
	}
	if patch.ParentClass != "" {
		field.ParentClass = patch.ParentClass
	}
	if patch.Required != nil {
		field.IsRequired = descriptor.Bool(*patch.Required)
	}
	return field
}
