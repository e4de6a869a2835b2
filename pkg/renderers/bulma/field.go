package bulma

import (
	"fmt"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

func (r *Renderer) renderField(fv form.FieldView, messages []string, opts render.RenderOptions) (string, error) {
	field := fv.Field

	switch field.Mode {
	case model.ModeHTML:
		return r.execute("templates/html", map[string]any{
			"parentClass": field.ParentClass,
			"content":     r.policy.Sanitize(field.Content),
		})
	case model.ModeSlot:
		return r.execute("templates/slot", map[string]any{
			"parentClass": field.ParentClass,
			"name":        field.SlotName,
			"content":     opts.Slots[field.SlotName],
		})
	}

	data := fieldData(fv, messages, opts)
	control, err := r.execute(controlTemplate(field.Kind), data)
	if err != nil {
		return "", err
	}
	data["control"] = control
	return r.execute("templates/field", data)
}

func (r *Renderer) execute(name string, data map[string]any) (string, error) {
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("bulma renderer: render %s: %w", name, err)
	}
	return out, nil
}

func controlTemplate(kind model.Kind) string {
	switch kind {
	case model.KindTextarea:
		return "templates/textarea"
	case model.KindRadio, model.KindCheckbox:
		return "templates/choices"
	case model.KindSelect:
		return "templates/select"
	default:
		return "templates/input"
	}
}

func fieldData(fv form.FieldView, messages []string, opts render.RenderOptions) map[string]any {
	field := fv.Field
	invalid := len(messages) > 0

	choices := make([]map[string]any, 0, len(field.Choices))
	selected := false
	for _, choice := range field.Choices {
		checked := fv.State.Value.Contains(choice.Value)
		if checked {
			selected = true
		}
		choices = append(choices, map[string]any{
			"label":   opts.Translate(field.ID+"."+choice.Value, choice.Label),
			"value":   choice.Value,
			"checked": checked,
		})
	}

	return map[string]any{
		"id":          field.ID,
		"kind":        inputType(field.Kind),
		"label":       opts.Translate(field.ID+".label", field.Label),
		"showLabel":   field.ShowLabel,
		"required":    field.Required,
		"placeholder": translateOptional(opts, field.ID+".placeholder", field.Placeholder),
		"help":        translateOptional(opts, field.ID+".help", field.Help),
		"parentClass": field.ParentClass,
		"value":       fv.State.Value.String(),
		"attrs":       constraintAttrs(field),
		"choices":     choices,
		"selected":    selected,
		"messages":    messages,
		"invalid":     invalid,
		"showIcon":    invalid && opts.IconEnabled(),
	}
}

func translateOptional(opts render.RenderOptions, key, fallback string) string {
	if fallback == "" {
		return ""
	}
	return opts.Translate(key, fallback)
}

func inputType(kind model.Kind) string {
	switch kind {
	case "", model.KindTextarea, model.KindSelect:
		return string(model.KindText)
	}
	return string(kind)
}

var constraintAttributes = []struct {
	rule  string
	attr  string
	param string
}{
	{model.ValidationRuleMinLength, "minlength", "value"},
	{model.ValidationRuleMaxLength, "maxlength", "value"},
	{model.ValidationRuleMin, "min", "value"},
	{model.ValidationRuleMax, "max", "value"},
	{model.ValidationRulePattern, "pattern", "pattern"},
}

// constraintAttrs mirrors validation rules as HTML attributes.
func constraintAttrs(field model.Field) []map[string]string {
	var attrs []map[string]string
	for _, c := range constraintAttributes {
		rule, ok := field.Rule(c.rule)
		if !ok {
			continue
		}
		if value := rule.Params[c.param]; value != "" {
			attrs = append(attrs, map[string]string{"name": c.attr, "value": value})
		}
	}
	return attrs
}
