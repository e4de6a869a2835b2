package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/descriptor"
)

// Builder resolves descriptor lists into flat, renderer-ready fields.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Slugger != nil {
		opts.Slugger = options.Slugger
	}
	return &Builder{opts: opts}
}

type resolveState struct {
	fields []Field
	ids    map[string]string
	row    int
}

// Resolve flattens nested groups in order and derives defaults for every
// labeled descriptor. Html and slot descriptors pass through untouched apart
// from their parent class.
func (b *Builder) Resolve(descriptors []descriptor.Descriptor) ([]Field, error) {
	state := &resolveState{
		fields: make([]Field, 0, len(descriptors)),
		ids:    make(map[string]string),
	}
	for idx, d := range descriptors {
		if err := b.resolveOne(state, d, fmt.Sprintf("fields[%d]", idx), 0); err != nil {
			return nil, err
		}
	}
	return state.fields, nil
}

func (b *Builder) resolveOne(state *resolveState, d descriptor.Descriptor, path string, row int) error {
	switch typed := d.(type) {
	case descriptor.Group:
		if row == 0 {
			state.row++
			row = state.row
		}
		for idx, child := range typed {
			if err := b.resolveOne(state, child, fmt.Sprintf("%s[%d]", path, idx), row); err != nil {
				return err
			}
		}
		return nil
	case descriptor.Field:
		field, err := b.resolveField(typed, path)
		if err != nil {
			return err
		}
		if owner, exists := state.ids[field.ID]; exists {
			return fmt.Errorf("%w: %q and %q both resolve to %q", ErrDuplicateIdentifier, owner, field.Label, field.ID)
		}
		state.ids[field.ID] = field.Label
		field.Row = row
		state.fields = append(state.fields, field)
		return nil
	case descriptor.HTML:
		if strings.TrimSpace(typed.Content) == "" {
			return &descriptor.DescriptorError{Path: path, Reason: "html content is empty"}
		}
		state.fields = append(state.fields, Field{
			Mode:        ModeHTML,
			Content:     typed.Content,
			ParentClass: strings.TrimSpace(typed.ParentClass),
			Row:         row,
		})
		return nil
	case descriptor.Slot:
		name := strings.TrimSpace(typed.Name)
		if name == "" {
			return &descriptor.DescriptorError{Path: path, Reason: "slot name is empty"}
		}
		state.fields = append(state.fields, Field{
			Mode:        ModeSlot,
			SlotName:    name,
			ParentClass: strings.TrimSpace(typed.ParentClass),
			Row:         row,
		})
		return nil
	case nil:
		return &descriptor.DescriptorError{Path: path, Reason: "descriptor is nil"}
	default:
		return &descriptor.DescriptorError{Path: path, Reason: fmt.Sprintf("unsupported descriptor %T", d)}
	}
}

func (b *Builder) resolveField(d descriptor.Field, path string) (Field, error) {
	label := strings.TrimSpace(d.Label)
	if label == "" {
		return Field{}, &descriptor.DescriptorError{Path: path, Reason: "label is empty"}
	}
	id := b.opts.Slugger(label)
	if id == "" {
		return Field{}, &descriptor.DescriptorError{Path: path, Reason: fmt.Sprintf("label %q produces an empty identifier", label)}
	}

	field := Field{
		Mode:        ModeInput,
		ID:          id,
		Label:       label,
		Kind:        normaliseKind(d.Type),
		Required:    d.IsRequired == nil || *d.IsRequired,
		ShowLabel:   d.ShowLabel == nil || *d.ShowLabel,
		Placeholder: d.Placeholder,
		Help:        d.Help,
		ParentClass: strings.TrimSpace(d.ParentClass),
	}

	validations, err := validationsFor(field, d)
	if err != nil {
		return Field{}, fmt.Errorf("%s: %w", path, err)
	}
	field.Validations = validations
	field.Choices, field.Initial = choicesAndInitial(field.Kind, d)
	return field, nil
}

func normaliseKind(raw string) Kind {
	kind := strings.ToLower(strings.TrimSpace(raw))
	if kind == "" {
		return KindText
	}
	return Kind(kind)
}

func validationsFor(field Field, d descriptor.Field) ([]ValidationRule, error) {
	var rules []ValidationRule
	if field.Required {
		rules = append(rules, ValidationRule{Kind: ValidationRuleRequired})
	}
	if d.MinLength != nil {
		rules = append(rules, valueRule(ValidationRuleMinLength, strconv.Itoa(*d.MinLength)))
	}
	if d.MaxLength != nil {
		rules = append(rules, valueRule(ValidationRuleMaxLength, strconv.Itoa(*d.MaxLength)))
	}
	if field.Kind == KindNumber {
		if d.Min != nil {
			rules = append(rules, valueRule(ValidationRuleMin, formatNumber(*d.Min)))
		}
		if d.Max != nil {
			rules = append(rules, valueRule(ValidationRuleMax, formatNumber(*d.Max)))
		}
	}
	if d.Pattern != "" {
		if _, err := regexp.Compile(d.Pattern); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, d.Pattern, err)
		}
		rules = append(rules, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": d.Pattern},
		})
	}
	if field.Kind == KindEmail {
		rules = append(rules, ValidationRule{Kind: ValidationRuleEmail})
	}
	return rules, nil
}

func valueRule(kind, value string) ValidationRule {
	return ValidationRule{Kind: kind, Params: map[string]string{"value": value}}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func choicesAndInitial(kind Kind, d descriptor.Field) ([]Choice, Value) {
	switch kind {
	case KindRadio:
		choices := convertChoices(d.Items, func(c descriptor.Choice) bool { return c.Checked })
		if key, ok := firstDefault(choices); ok {
			return choices, Text(key)
		}
		return choices, Text(d.Value)
	case KindCheckbox:
		choices := convertChoices(d.Items, func(c descriptor.Choice) bool { return c.Checked })
		var checked []string
		for _, c := range choices {
			if c.Default {
				checked = append(checked, c.Value)
			}
		}
		return choices, List(checked...)
	case KindSelect:
		choices := convertChoices(d.Options, func(c descriptor.Choice) bool { return c.Selected })
		if key, ok := firstDefault(choices); ok {
			return choices, Text(key)
		}
		return choices, Text(d.Value)
	default:
		return nil, Text(d.Value)
	}
}

func convertChoices(src []descriptor.Choice, isDefault func(descriptor.Choice) bool) []Choice {
	if len(src) == 0 {
		return nil
	}
	out := make([]Choice, 0, len(src))
	for _, c := range src {
		label := c.Text
		if label == "" {
			label = c.Value
		}
		out = append(out, Choice{Label: label, Value: c.Key(), Default: isDefault(c)})
	}
	return out
}

func firstDefault(choices []Choice) (string, bool) {
	for _, c := range choices {
		if c.Default {
			return c.Value, true
		}
	}
	return "", false
}
