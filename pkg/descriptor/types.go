package descriptor

// Descriptor is the closed set of declarative field specifications a caller can
// hand to a form: Field, HTML, Slot and Group. The unexported marker method
// keeps the set sealed so resolvers can switch over it exhaustively.
type Descriptor interface {
	descriptor()
}

// Field describes a labeled input. Pointer members distinguish "unset" from a
// zero value so defaults (required, visible label) can be derived later.
type Field struct {
	Label       string   `json:"label" yaml:"label"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	IsRequired  *bool    `json:"isRequired,omitempty" yaml:"isRequired,omitempty"`
	ShowLabel   *bool    `json:"showLabel,omitempty" yaml:"showLabel,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string   `json:"help,omitempty" yaml:"help,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength   *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Items       []Choice `json:"items,omitempty" yaml:"items,omitempty"`
	Options     []Choice `json:"options,omitempty" yaml:"options,omitempty"`
	Value       string   `json:"value,omitempty" yaml:"value,omitempty"`
	ParentClass string   `json:"parentClass,omitempty" yaml:"parentClass,omitempty"`
}

// HTML injects a raw markup fragment between fields.
type HTML struct {
	Content     string `json:"html" yaml:"html"`
	ParentClass string `json:"parentClass,omitempty" yaml:"parentClass,omitempty"`
}

// Slot reserves a named placeholder the rendering layer fills with caller
// supplied content.
type Slot struct {
	Name        string `json:"slot" yaml:"slot"`
	ParentClass string `json:"parentClass,omitempty" yaml:"parentClass,omitempty"`
}

// Group keeps several descriptors on the same row. Groups may nest; resolution
// flattens them in order.
type Group []Descriptor

func (Field) descriptor() {}
func (HTML) descriptor()  {}
func (Slot) descriptor()  {}
func (Group) descriptor() {}

// Choice is an entry of a radio/checkbox item list or a select option list.
type Choice struct {
	Text     string `json:"text" yaml:"text"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Checked  bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Key returns the submitted value for the choice, falling back to its text.
func (c Choice) Key() string {
	if c.Value != "" {
		return c.Value
	}
	return c.Text
}

// Document is the on-disk representation of a form: a name, its descriptors and
// the form-level behaviour toggles.
type Document struct {
	Name                 string
	Fields               []Descriptor
	ResetFormAfterSubmit bool
	HasIcon              *bool
}

// Bool is a small helper for building descriptors in code.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
