package model

import (
	"encoding/json"
	"strings"
)

// Mode tells the rendering layer how a resolved field is painted.
type Mode string

const (
	ModeInput Mode = "input"
	ModeHTML  Mode = "html"
	ModeSlot  Mode = "slot"
)

// Kind is the input kind of a labeled field. It mirrors HTML input types plus
// the textarea/select pseudo types.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindTel      Kind = "tel"
	KindNumber   Kind = "number"
	KindURL      Kind = "url"
	KindDate     Kind = "date"
	KindTextarea Kind = "textarea"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleEmail     = "email"
)

// ValidationRule represents a single constraint applied to a field. Numeric
// bounds and length limits encode their threshold in Params["value"] while
// pattern rules keep the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Choice is a resolved radio/checkbox item or select option.
type Choice struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Default bool   `json:"default,omitempty"`
}

// Field is a renderer-ready field specification. Only ModeInput fields carry
// values; html and slot entries hold their content or slot name and parent
// class.
type Field struct {
	Mode        Mode             `json:"mode"`
	ID          string           `json:"id,omitempty"`
	Label       string           `json:"label,omitempty"`
	Kind        Kind             `json:"kind,omitempty"`
	Required    bool             `json:"required"`
	ShowLabel   bool             `json:"showLabel"`
	Placeholder string           `json:"placeholder,omitempty"`
	Help        string           `json:"help,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
	Choices     []Choice         `json:"choices,omitempty"`
	Initial     Value            `json:"initial"`
	ParentClass string           `json:"parentClass,omitempty"`
	Content     string           `json:"content,omitempty"`
	SlotName    string           `json:"slot,omitempty"`
	// Row is non-zero for fields that came from the same group descriptor.
	Row int `json:"row,omitempty"`
}

// IsInput reports whether the field contributes a value to the form state.
func (f Field) IsInput() bool {
	return f.Mode == ModeInput
}

// IsNormal reports whether the field is a plain text equivalent input for value
// collection. tel inputs collect exactly like text ones.
func (f Field) IsNormal() bool {
	return f.IsInput() && (f.Kind == KindText || f.Kind == KindTel)
}

// IsMulti reports whether the field collects a list of values.
func (f Field) IsMulti() bool {
	return f.IsInput() && f.Kind == KindCheckbox
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// Value is a field value: a single string for most kinds, a list of strings
// for checkbox groups.
type Value struct {
	text  string
	list  []string
	multi bool
}

// Text builds a single valued Value.
func Text(s string) Value {
	return Value{text: s}
}

// List builds a multi valued Value. A nil or empty list is still multi valued.
func List(items ...string) Value {
	return Value{list: append([]string{}, items...), multi: true}
}

// IsMulti reports whether v holds a list.
func (v Value) IsMulti() bool { return v.multi }

// String returns the single value, or the list joined with commas.
func (v Value) String() string {
	if v.multi {
		return strings.Join(v.list, ",")
	}
	return v.text
}

// Strings returns the list items, or a one element slice for non empty single
// values.
func (v Value) Strings() []string {
	if v.multi {
		return append([]string{}, v.list...)
	}
	if v.text == "" {
		return nil
	}
	return []string{v.text}
}

// IsEmpty reports whether no value is present.
func (v Value) IsEmpty() bool {
	if v.multi {
		return len(v.list) == 0
	}
	return strings.TrimSpace(v.text) == ""
}

// Contains reports whether item is part of the value.
func (v Value) Contains(item string) bool {
	if !v.multi {
		return v.text == item
	}
	for _, candidate := range v.list {
		if candidate == item {
			return true
		}
	}
	return false
}

// Any returns a string or a []string suitable for payloads.
func (v Value) Any() any {
	if v.multi {
		return append([]string{}, v.list...)
	}
	return v.text
}

// Equal compares two values.
func (v Value) Equal(other Value) bool {
	if v.multi != other.multi {
		return false
	}
	if !v.multi {
		return v.text == other.text
	}
	if len(v.list) != len(other.list) {
		return false
	}
	for i := range v.list {
		if v.list[i] != other.list[i] {
			return false
		}
	}
	return true
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}
