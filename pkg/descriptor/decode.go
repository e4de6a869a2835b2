package descriptor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var modeKeys = []string{"label", "html", "slot"}

// Parse decodes a JSON or YAML document. The root can be a bare list of
// descriptors or an object with name, fields, resetFormAfterSubmit and hasIcon.
func Parse(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("descriptor: %s is empty", source)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
			return Document{}, fmt.Errorf("descriptor: parse %s: invalid JSON or YAML", source)
		}
	}
	return FromValue(raw)
}

// FromValue converts an already decoded JSON/YAML tree into a Document.
func FromValue(raw any) (Document, error) {
	switch node := raw.(type) {
	case []any:
		fields, err := decodeList(node, "fields")
		if err != nil {
			return Document{}, err
		}
		return Document{Fields: fields}, nil
	case map[string]any:
		return decodeDocument(node)
	default:
		return Document{}, fmt.Errorf("descriptor: document root must be a list or an object, got %T", raw)
	}
}

func decodeDocument(node map[string]any) (Document, error) {
	doc := Document{}
	if v, ok := node["name"]; ok {
		name, err := asString(v)
		if err != nil {
			return Document{}, fmt.Errorf("descriptor: name: %w", err)
		}
		doc.Name = name
	}
	if v, ok := node["resetFormAfterSubmit"]; ok {
		b, err := asBool(v)
		if err != nil {
			return Document{}, fmt.Errorf("descriptor: resetFormAfterSubmit: %w", err)
		}
		doc.ResetFormAfterSubmit = b
	}
	if v, ok := node["hasIcon"]; ok {
		b, err := asBool(v)
		if err != nil {
			return Document{}, fmt.Errorf("descriptor: hasIcon: %w", err)
		}
		doc.HasIcon = &b
	}

	rawFields, ok := node["fields"]
	if !ok {
		return Document{}, fmt.Errorf("descriptor: document has no fields")
	}
	list, ok := rawFields.([]any)
	if !ok {
		return Document{}, fmt.Errorf("descriptor: fields must be a list, got %T", rawFields)
	}
	fields, err := decodeList(list, "fields")
	if err != nil {
		return Document{}, err
	}
	doc.Fields = fields
	return doc, nil
}

func decodeList(list []any, path string) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(list))
	for idx, entry := range list {
		d, err := decodeOne(entry, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeOne(raw any, path string) (Descriptor, error) {
	switch node := raw.(type) {
	case []any:
		children, err := decodeList(node, path)
		if err != nil {
			return nil, err
		}
		return Group(children), nil
	case map[string]any:
		return decodeMap(node, path)
	default:
		return nil, invalid(path, "expected object or list, got %T", raw)
	}
}

func decodeMap(node map[string]any, path string) (Descriptor, error) {
	var present []string
	for _, key := range modeKeys {
		if _, ok := node[key]; ok {
			present = append(present, key)
		}
	}
	switch len(present) {
	case 0:
		return nil, invalid(path, "one of label, html or slot is required")
	case 1:
	default:
		return nil, invalid(path, "keys %s are mutually exclusive", strings.Join(present, ", "))
	}

	parentClass, err := optionalString(node, "parentClass", path)
	if err != nil {
		return nil, err
	}

	switch present[0] {
	case "html":
		content, err := optionalString(node, "html", path)
		if err != nil {
			return nil, err
		}
		return HTML{Content: content, ParentClass: parentClass}, nil
	case "slot":
		name, err := optionalString(node, "slot", path)
		if err != nil {
			return nil, err
		}
		return Slot{Name: name, ParentClass: parentClass}, nil
	}
	return decodeField(node, path, parentClass)
}

func decodeField(node map[string]any, path, parentClass string) (Field, error) {
	field := Field{ParentClass: parentClass}
	var err error

	text := []struct {
		key  string
		dest *string
	}{
		{"label", &field.Label},
		{"type", &field.Type},
		{"placeholder", &field.Placeholder},
		{"help", &field.Help},
		{"pattern", &field.Pattern},
		{"value", &field.Value},
	}
	for _, entry := range text {
		if *entry.dest, err = optionalString(node, entry.key, path); err != nil {
			return Field{}, err
		}
	}

	if field.IsRequired, err = optionalBool(node, "isRequired", path); err != nil {
		return Field{}, err
	}
	if field.ShowLabel, err = optionalBool(node, "showLabel", path); err != nil {
		return Field{}, err
	}
	if field.MinLength, err = optionalInt(node, "minLength", path); err != nil {
		return Field{}, err
	}
	if field.MaxLength, err = optionalInt(node, "maxLength", path); err != nil {
		return Field{}, err
	}
	if field.Min, err = optionalFloat(node, "min", path); err != nil {
		return Field{}, err
	}
	if field.Max, err = optionalFloat(node, "max", path); err != nil {
		return Field{}, err
	}
	if field.Items, err = optionalChoices(node, "items", path); err != nil {
		return Field{}, err
	}
	if field.Options, err = optionalChoices(node, "options", path); err != nil {
		return Field{}, err
	}
	return field, nil
}

func optionalString(node map[string]any, key, path string) (string, error) {
	v, ok := node[key]
	if !ok || v == nil {
		return "", nil
	}
	s, err := asString(v)
	if err != nil {
		return "", invalid(path, "%s: %v", key, err)
	}
	return s, nil
}

func optionalBool(node map[string]any, key, path string) (*bool, error) {
	v, ok := node[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, err := asBool(v)
	if err != nil {
		return nil, invalid(path, "%s: %v", key, err)
	}
	return &b, nil
}

func optionalInt(node map[string]any, key, path string) (*int, error) {
	f, err := optionalFloat(node, key, path)
	if err != nil || f == nil {
		return nil, err
	}
	n := int(*f)
	if float64(n) != *f || n < 0 {
		return nil, invalid(path, "%s: expected a non-negative integer, got %v", key, *f)
	}
	return &n, nil
}

func optionalFloat(node map[string]any, key, path string) (*float64, error) {
	v, ok := node[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := asFloat(v)
	if err != nil {
		return nil, invalid(path, "%s: %v", key, err)
	}
	return &f, nil
}

func optionalChoices(node map[string]any, key, path string) ([]Choice, error) {
	v, ok := node[key]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, invalid(path, "%s: expected a list, got %T", key, v)
	}
	out := make([]Choice, 0, len(list))
	for idx, entry := range list {
		choice, err := decodeChoice(entry)
		if err != nil {
			return nil, invalid(path, "%s[%d]: %v", key, idx, err)
		}
		out = append(out, choice)
	}
	return out, nil
}

func decodeChoice(raw any) (Choice, error) {
	switch node := raw.(type) {
	case string:
		return Choice{Text: node}, nil
	case map[string]any:
		var c Choice
		var err error
		if v, ok := node["text"]; ok {
			if c.Text, err = asString(v); err != nil {
				return Choice{}, fmt.Errorf("text: %w", err)
			}
		}
		if v, ok := node["value"]; ok {
			if c.Value, err = asString(v); err != nil {
				return Choice{}, fmt.Errorf("value: %w", err)
			}
		}
		if v, ok := node["checked"]; ok {
			if c.Checked, err = asBool(v); err != nil {
				return Choice{}, fmt.Errorf("checked: %w", err)
			}
		}
		if v, ok := node["selected"]; ok {
			if c.Selected, err = asBool(v); err != nil {
				return Choice{}, fmt.Errorf("selected: %w", err)
			}
		}
		if c.Key() == "" {
			return Choice{}, fmt.Errorf("text or value is required")
		}
		return c, nil
	default:
		return Choice{}, fmt.Errorf("expected string or object, got %T", raw)
	}
}

func asString(v any) (string, error) {
	switch typed := v.(type) {
	case string:
		return typed, nil
	case int, int64, float64, bool:
		return fmt.Sprint(typed), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func asBool(v any) (bool, error) {
	switch typed := v.(type) {
	case bool:
		return typed, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", typed)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func asFloat(v any) (float64, error) {
	switch typed := v.(type) {
	case float64:
		return typed, nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case uint64:
		return float64(typed), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", typed)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
