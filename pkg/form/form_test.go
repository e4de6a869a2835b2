package form_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/testsupport"
	"github.com/goliatone/go-dynform/pkg/validation"
)

func newContactForm(t *testing.T, opts ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(testsupport.Context(), testsupport.ContactFormName, testsupport.ContactForm(), opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

type recorder struct {
	events []form.Event
}

func (r *recorder) listen(e form.Event) { r.events = append(r.events, e) }

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func TestNew_RequiresName(t *testing.T) {
	_, err := form.New(context.Background(), "", testsupport.ContactForm())
	if !errors.Is(err, form.ErrFormNameRequired) {
		t.Fatalf("expected ErrFormNameRequired, got %v", err)
	}
}

func TestNew_PropagatesDescriptorErrors(t *testing.T) {
	_, err := form.New(context.Background(), "broken", []descriptor.Descriptor{descriptor.Field{}})
	if !errors.Is(err, descriptor.ErrInvalidFieldDescriptor) {
		t.Fatalf("expected descriptor error, got %v", err)
	}
}

func TestForm_InitialState(t *testing.T) {
	f := newContactForm(t)

	if f.IsValid() {
		t.Fatalf("contact form starts invalid: First Name is prefilled too short and Last Name is empty")
	}

	first, ok := f.State("First Name")
	if !ok {
		t.Fatalf("missing First Name state")
	}
	if first.Dirty || first.Touched || !first.Pristine() {
		t.Fatalf("prefilled field must start pristine, got %+v", first)
	}
	if first.Valid || first.Rule != model.ValidationRuleMinLength {
		t.Fatalf("prefilled value must be validated immediately, got %+v", first)
	}

	want := map[string]string{
		"first-name": "The First Name field must be at least 4 characters.",
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}

	checkbox, _ := f.State("Checkbox")
	if diff := cmp.Diff([]string{"Checkbox-One"}, checkbox.Value.Strings()); diff != "" {
		t.Fatalf("checkbox initial mismatch (-want +got):\n%s", diff)
	}
	country, _ := f.State("Country")
	if country.Value.String() != testsupport.CountryValue {
		t.Fatalf("expected selected country, got %q", country.Value.String())
	}
}

func TestForm_ValidityIsConjunction(t *testing.T) {
	f := newContactForm(t)
	testsupport.FillContactForm(t, f)

	if !f.IsValid() {
		t.Fatalf("expected filled form to be valid, errors: %v", f.View().Fields)
	}

	ctx := testsupport.Context()
	if err := f.SetValue(ctx, "Age", model.Text("17")); err != nil {
		t.Fatalf("set age: %v", err)
	}
	if f.IsValid() {
		t.Fatalf("one invalid field must invalidate the form")
	}
	if err := f.SetValue(ctx, "Age", model.Text(testsupport.NumberValue)); err != nil {
		t.Fatalf("set age: %v", err)
	}
	if !f.IsValid() {
		t.Fatalf("form must become valid again")
	}
}

func TestForm_EmptyFormIsValid(t *testing.T) {
	f, err := form.New(context.Background(), "notes", []descriptor.Descriptor{
		descriptor.HTML{Content: "<p>Nothing to fill</p>"},
		descriptor.Slot{Name: "footer"},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if !f.IsValid() {
		t.Fatalf("a form without inputs is valid")
	}
	if len(f.Values()) != 0 {
		t.Fatalf("expected no values, got %v", f.Values())
	}
}

func TestForm_SetValueMarksDirty(t *testing.T) {
	f := newContactForm(t)
	ctx := testsupport.Context()

	if err := f.SetValue(ctx, "Last Name", model.Text("")); err != nil {
		t.Fatalf("set: %v", err)
	}
	state, _ := f.State("Last Name")
	if state.Dirty {
		t.Fatalf("setting the same value must not mark the field dirty")
	}

	if err := f.SetValue(ctx, "Last Name", model.Text("ab")); err != nil {
		t.Fatalf("set: %v", err)
	}
	state, _ = f.State("Last Name")
	if !state.Dirty || state.Valid {
		t.Fatalf("expected dirty invalid field, got %+v", state)
	}
	if got := f.Errors()["last-name"]; got != "The Last Name field must be at least 3 characters." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestForm_TouchRevealsMessage(t *testing.T) {
	f := newContactForm(t)

	if _, ok := f.Errors()["email"]; ok {
		t.Fatalf("untouched empty field must not show its message")
	}
	if err := f.Touch(testsupport.Context(), "Email"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if got := f.Errors()["email"]; got != "The Email field is required." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestForm_UnknownField(t *testing.T) {
	f := newContactForm(t)
	ctx := testsupport.Context()

	if err := f.SetValue(ctx, "Nope", model.Text("x")); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Touch(ctx, "Nope"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.SetValueByID(ctx, "nope", model.Text("x")); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestForm_ValueShape(t *testing.T) {
	f := newContactForm(t)
	ctx := testsupport.Context()

	if err := f.SetValue(ctx, "Email", model.List("a@b.fr", "c@d.fr")); !errors.Is(err, form.ErrValueShape) {
		t.Fatalf("expected ErrValueShape, got %v", err)
	}
	if err := f.SetValueByID(ctx, "checkbox", model.Text("Checkbox-Two")); err != nil {
		t.Fatalf("set checkbox: %v", err)
	}
	state, _ := f.State("Checkbox")
	if !state.Value.IsMulti() || !state.Value.Contains("Checkbox-Two") {
		t.Fatalf("single value must be lifted into a list, got %+v", state.Value)
	}
}

func TestForm_SubmitInvalid(t *testing.T) {
	rec := &recorder{}
	f := newContactForm(t, form.WithListener(rec.listen))

	_, err := f.Submit(testsupport.Context())
	if !errors.Is(err, form.ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
	var invalid *form.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidError, got %T", err)
	}
	if _, ok := invalid.Fields["Last Name"]; !ok {
		t.Fatalf("expected Last Name in invalid fields, got %v", invalid.Fields)
	}
	if len(rec.events) != 0 {
		t.Fatalf("invalid submit must not emit, got %v", rec.events)
	}
	if got := f.Errors()["last-name"]; got == "" {
		t.Fatalf("rejected submit must reveal messages")
	}
}

func TestForm_SubmitEmitsPayload(t *testing.T) {
	rec := &recorder{}
	f := newContactForm(t, form.WithListener(rec.listen), form.WithIDGenerator(func() string { return "sub-1" }))
	testsupport.FillContactForm(t, f)

	submission, err := f.Submit(testsupport.Context())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := form.Submission{
		ID:       "sub-1",
		FormName: testsupport.ContactFormName,
		Values:   testsupport.ExpectedSubmission(),
	}
	if diff := cmp.Diff(want, submission); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	if rec.count(form.EventFormSubmitted) != 1 || rec.count(form.EventFormReset) != 0 {
		t.Fatalf("expected exactly one submit event, got %v", rec.events)
	}
	event := rec.events[0]
	if event.FormName != testsupport.ContactFormName || event.Submission == nil {
		t.Fatalf("unexpected event %+v", event)
	}
	if diff := cmp.Diff(want, *event.Submission); diff != "" {
		t.Fatalf("event payload mismatch (-want +got):\n%s", diff)
	}

	state, _ := f.State("First Name")
	if state.Value.String() != testsupport.DefaultValue {
		t.Fatalf("values must survive submit without reset, got %q", state.Value.String())
	}
}

func TestForm_SubmitResetsWhenConfigured(t *testing.T) {
	rec := &recorder{}
	f := newContactForm(t, form.WithListener(rec.listen), form.WithResetAfterSubmit(true))
	testsupport.FillContactForm(t, f)

	if _, err := f.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if rec.count(form.EventFormSubmitted) != 1 {
		t.Fatalf("expected one submit event, got %v", rec.events)
	}
	if rec.count(form.EventFormReset) != 1 {
		t.Fatalf("expected reset to run exactly once, got %v", rec.events)
	}
	if rec.events[0].Name != form.EventFormSubmitted {
		t.Fatalf("submit must be emitted before reset, got %v", rec.events)
	}

	first, _ := f.State("First Name")
	if first.Value.String() != "fir" || first.Dirty || first.Touched {
		t.Fatalf("expected First Name restored to its initial value, got %+v", first)
	}
	last, _ := f.State("Last Name")
	if !last.Value.IsEmpty() {
		t.Fatalf("expected Last Name cleared, got %q", last.Value.String())
	}
	if f.IsValid() {
		t.Fatalf("validity must be recomputed after reset")
	}
}

func TestForm_ResetRestoresInitialValues(t *testing.T) {
	rec := &recorder{}
	f := newContactForm(t)
	f.OnEvent(rec.listen)
	ctx := testsupport.Context()

	if err := f.SetValue(ctx, "Checkbox", model.List("Checkbox-Two")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.Touch(ctx, "Email"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	f.Reset(ctx)

	checkbox, _ := f.State("Checkbox")
	if diff := cmp.Diff([]string{"Checkbox-One"}, checkbox.Value.Strings()); diff != "" {
		t.Fatalf("checkbox mismatch (-want +got):\n%s", diff)
	}
	email, _ := f.State("Email")
	if email.Touched {
		t.Fatalf("reset must clear touched flags")
	}
	if rec.count(form.EventFormReset) != 1 {
		t.Fatalf("expected one reset event, got %v", rec.events)
	}
}

func TestForm_SetFieldsReconciles(t *testing.T) {
	f := newContactForm(t)
	ctx := testsupport.Context()

	if err := f.SetValue(ctx, "Last Name", model.Text("Doe")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.SetValue(ctx, "Email", model.Text(testsupport.EmailValue)); err != nil {
		t.Fatalf("set: %v", err)
	}

	err := f.SetFields(ctx, []descriptor.Descriptor{
		descriptor.Field{Label: "Last Name"},
		descriptor.Field{Label: "Email", Type: "number"},
		descriptor.Field{Label: "City", Value: "Paris"},
	})
	if err != nil {
		t.Fatalf("set fields: %v", err)
	}

	last, _ := f.State("Last Name")
	if last.Value.String() != "Doe" || !last.Dirty {
		t.Fatalf("surviving field must keep its value and flags, got %+v", last)
	}
	email, _ := f.State("Email")
	if !email.Value.IsEmpty() || email.Dirty {
		t.Fatalf("field with a new kind must start fresh, got %+v", email)
	}
	city, _ := f.State("City")
	if city.Value.String() != "Paris" {
		t.Fatalf("new field must start from its initial value, got %+v", city)
	}
	if _, ok := f.State("First Name"); ok {
		t.Fatalf("removed field must be dropped")
	}
	if len(f.Fields()) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(f.Fields()))
	}
}

func TestForm_FromDocument(t *testing.T) {
	doc, err := descriptor.Parse([]byte(testsupport.ContactFormYAML), "contact.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc.ResetFormAfterSubmit = true

	rec := &recorder{}
	f, err := form.FromDocument(context.Background(), doc, form.WithListener(rec.listen))
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	if f.Name() != testsupport.ContactFormName {
		t.Fatalf("unexpected name %q", f.Name())
	}
	testsupport.FillContactForm(t, f)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.count(form.EventFormReset) != 1 {
		t.Fatalf("document flag must enable reset after submit, got %v", rec.events)
	}
}

func TestForm_CustomValidator(t *testing.T) {
	always := validation.ValidatorFunc(func(_ context.Context, field model.Field, _ model.Value) validation.Result {
		return validation.Result{Valid: false, Rule: "custom", Message: field.Label + " rejected"}
	})
	f := newContactForm(t, form.WithValidator(always))

	if err := f.Touch(testsupport.Context(), "Zip"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if got := f.Errors()["zip"]; got != "Zip rejected" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestForm_LogsSubmissions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f := newContactForm(t, form.WithLogger(logger), form.WithIDGenerator(func() string { return "sub-42" }))
	testsupport.FillContactForm(t, f)

	if _, err := f.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(buf.String(), "submission=sub-42") {
		t.Fatalf("expected submission to be logged, got %q", buf.String())
	}
}

func TestView(t *testing.T) {
	f := newContactForm(t)
	view := f.View()

	if view.Name != testsupport.ContactFormName || view.Valid {
		t.Fatalf("unexpected view header %+v", view)
	}
	if diff := cmp.Diff([]string{"terms"}, view.Slots()); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
	if len(view.Fields) != len(f.Fields()) {
		t.Fatalf("view must include html and slot entries")
	}
}
