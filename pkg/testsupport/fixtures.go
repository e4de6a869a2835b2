package testsupport

import (
	"bytes"
	"context"
	"io"
	"sort"
	"testing"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/model"
)

const (
	// ContactFormName is the form name used by the contact fixture.
	ContactFormName = "testFormName"
	// DefaultValue is typed into every normal text input by FillContactForm.
	DefaultValue = "test"
	// EmailValue is a valid address for the Email field.
	EmailValue = DefaultValue + "@aol.fr"
	// RadioValue is the value typed into the Radio field.
	RadioValue = "Radio-One"
	// NumberValue satisfies the Age bounds.
	NumberValue = "18"
	// ZipValue is a non-negative number that also matches the password pattern.
	ZipValue = "12345"
	// PasswordValue matches ^([0-9]+)$.
	PasswordValue = ZipValue
	// CountryValue is the key of the selected Country option.
	CountryValue = "ZB"
	// PatternPassword is the Password field pattern.
	PatternPassword = "^([0-9]+)$"
)

// ContactForm returns the reference descriptor list: a grouped name row, typed
// inputs with constraints, choices with preselected entries, an html fragment
// and a named slot.
func ContactForm() []descriptor.Descriptor {
	return []descriptor.Descriptor{
		descriptor.Group{
			descriptor.Field{
				Label:     "First Name",
				MinLength: descriptor.Int(4),
				Value:     "fir",
				Help:      "Your given name",
			},
			descriptor.Field{
				Label:       "Last Name",
				Placeholder: "Last Name placeholder",
				MinLength:   descriptor.Int(3),
			},
		},
		descriptor.Field{Label: "Email", Type: "email"},
		descriptor.Field{Label: "Phone", Type: "tel", ParentClass: "is-phone custom"},
		descriptor.Field{Label: "Password", Type: "password", Pattern: PatternPassword},
		descriptor.Field{Label: "Age", Type: "number", Min: descriptor.Float(18), Max: descriptor.Float(99)},
		descriptor.Field{Label: "Zip", Type: "number", Min: descriptor.Float(0)},
		descriptor.HTML{Content: `<p class="notice">Tell us more</p>`},
		descriptor.Field{Label: "Message", Type: "textarea"},
		descriptor.Field{
			Label: "Checkbox",
			Type:  "checkbox",
			Items: []descriptor.Choice{
				{Text: "Checkbox-One", Checked: true},
				{Text: "Checkbox-Two"},
			},
		},
		descriptor.Field{
			Label: "Radio",
			Type:  "radio",
			Items: []descriptor.Choice{{Text: "Radio-One"}, {Text: "Radio-Two"}},
		},
		descriptor.Field{
			Label: "Country",
			Type:  "select",
			Options: []descriptor.Choice{
				{Text: "France", Value: "FR"},
				{Text: "Zimbabwe", Value: CountryValue, Selected: true},
			},
		},
		descriptor.Slot{Name: "terms"},
	}
}

// ContactFormYAML is the YAML rendition of ContactForm wrapped in a document.
const ContactFormYAML = `name: testFormName
resetFormAfterSubmit: false
fields:
  - - label: First Name
      minLength: 4
      value: fir
      help: Your given name
    - label: Last Name
      placeholder: Last Name placeholder
      minLength: 3
  - label: Email
    type: email
  - label: Phone
    type: tel
    parentClass: is-phone custom
  - label: Password
    type: password
    pattern: "^([0-9]+)$"
  - label: Age
    type: number
    min: 18
    max: 99
  - label: Zip
    type: number
    min: 0
  - html: <p class="notice">Tell us more</p>
  - label: Message
    type: textarea
  - label: Checkbox
    type: checkbox
    items:
      - text: Checkbox-One
        checked: true
      - Checkbox-Two
  - label: Radio
    type: radio
    items: [Radio-One, Radio-Two]
  - label: Country
    type: select
    options:
      - text: France
        value: FR
      - text: Zimbabwe
        value: ZB
        selected: true
  - slot: terms
`

// NormalInputLabels lists the labels of plain text equivalent inputs (text and
// tel) in the contact fixture.
func NormalInputLabels() []string {
	return []string{"First Name", "Last Name", "Phone"}
}

// FilledValues returns the values FillContactForm types, keyed by label. The
// checkbox and select keep their preselected entries.
func FilledValues() map[string]model.Value {
	values := map[string]model.Value{
		"Password": model.Text(PasswordValue),
		"Message":  model.Text(DefaultValue),
		"Email":    model.Text(EmailValue),
		"Radio":    model.Text(RadioValue),
		"Age":      model.Text(NumberValue),
		"Zip":      model.Text(ZipValue),
	}
	for _, label := range NormalInputLabels() {
		values[label] = model.Text(DefaultValue)
	}
	return values
}

// ValueSetter is satisfied by forms accepting label keyed edits.
type ValueSetter interface {
	SetValue(ctx context.Context, label string, value model.Value) error
}

// FillContactForm types FilledValues into f in a stable order.
func FillContactForm(t *testing.T, f ValueSetter) {
	t.Helper()

	values := FilledValues()
	labels := make([]string, 0, len(values))
	for label := range values {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if err := f.SetValue(Context(), label, values[label]); err != nil {
			t.Fatalf("set %s: %v", label, err)
		}
	}
}

// ExpectedSubmission returns the payload values a filled contact form submits.
func ExpectedSubmission() map[string]any {
	out := make(map[string]any)
	for label, value := range FilledValues() {
		out[label] = value.Any()
	}
	out["Checkbox"] = []string{"Checkbox-One"}
	out["Country"] = CountryValue
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
