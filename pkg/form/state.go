package form

import "github.com/goliatone/go-dynform/pkg/model"

// FieldState tracks one input field. Validity moves independently from the
// pristine/dirty flag: a field can be dirty and valid, or pristine and invalid.
type FieldState struct {
	Value   model.Value `json:"value"`
	Initial model.Value `json:"initial"`
	Valid   bool        `json:"valid"`
	Rule    string      `json:"rule,omitempty"`
	Message string      `json:"message,omitempty"`
	Dirty   bool        `json:"dirty"`
	Touched bool        `json:"touched"`
}

// Pristine reports whether the value has not been changed since the last
// initialisation or reset.
func (s FieldState) Pristine() bool {
	return !s.Dirty
}

// ShowError reports whether the validation message should be displayed. A
// message surfaces once the user changed or left the field, or right away when
// the field was prefilled with an invalid value.
func (s FieldState) ShowError() bool {
	if s.Valid || s.Message == "" {
		return false
	}
	return s.Dirty || s.Touched || !s.Initial.IsEmpty()
}

// FieldView pairs a resolved field with its current state. Html and slot
// entries carry a zero State.
type FieldView struct {
	Field model.Field `json:"field"`
	State FieldState  `json:"state"`
}

// View is the read model handed to renderers.
type View struct {
	Name   string      `json:"name"`
	Valid  bool        `json:"valid"`
	Fields []FieldView `json:"fields"`
}

// Errors returns the visible messages keyed by field id.
func (v View) Errors() map[string]string {
	out := make(map[string]string)
	for _, fv := range v.Fields {
		if fv.Field.IsInput() && fv.State.ShowError() {
			out[fv.Field.ID] = fv.State.Message
		}
	}
	return out
}

// Slots returns the slot names referenced by the view, in order.
func (v View) Slots() []string {
	var out []string
	for _, fv := range v.Fields {
		if fv.Field.Mode == model.ModeSlot {
			out = append(out, fv.Field.SlotName)
		}
	}
	return out
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if list, ok := v.([]string); ok {
			out[k] = append([]string{}, list...)
			continue
		}
		out[k] = v
	}
	return out
}
