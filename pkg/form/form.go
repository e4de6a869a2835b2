package form

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// Option mutates the form configuration.
type Option func(*Form)

// WithValidator swaps the validation collaborator.
func WithValidator(validator validation.Validator) Option {
	return func(f *Form) {
		if validator != nil {
			f.validator = validator
		}
	}
}

// WithResolver swaps the descriptor resolver.
func WithResolver(resolver model.Resolver) Option {
	return func(f *Form) {
		if resolver != nil {
			f.resolver = resolver
		}
	}
}

// WithResetAfterSubmit restores initial values after every successful submit.
func WithResetAfterSubmit(enabled bool) Option {
	return func(f *Form) {
		f.resetAfterSubmit = enabled
	}
}

// WithLogger attaches a structured logger. Forms are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithListener registers a listener at construction time.
func WithListener(listener Listener) Option {
	return func(f *Form) {
		if listener != nil {
			f.listeners = append(f.listeners, listener)
		}
	}
}

// WithIDGenerator overrides how submission identifiers are produced.
func WithIDGenerator(next func() string) Option {
	return func(f *Form) {
		if next != nil {
			f.nextID = next
		}
	}
}

// Form aggregates per-field state into form level validity and submission
// behaviour. A Form is not safe for concurrent use; callers own a form per
// session or request.
type Form struct {
	name             string
	resolver         model.Resolver
	validator        validation.Validator
	logger           *slog.Logger
	resetAfterSubmit bool
	nextID           func() string
	listeners        []Listener

	fields  []model.Field
	states  map[string]*FieldState
	byID    map[string]string
	inputs  []string
	isValid bool
}

// New resolves descriptors, seeds initial values and runs a first validation
// pass so prefilled values are checked immediately.
func New(ctx context.Context, name string, descriptors []descriptor.Descriptor, opts ...Option) (*Form, error) {
	if name == "" {
		return nil, ErrFormNameRequired
	}

	f := &Form{
		name:      name,
		resolver:  model.NewResolver(),
		validator: validation.NewSchemaValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		nextID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	if err := f.install(ctx, descriptors, nil); err != nil {
		return nil, err
	}
	f.logger.Debug("form initialised", "form", f.name, "fields", len(f.fields), "valid", f.isValid)
	return f, nil
}

// FromDocument builds a form from a decoded document, honouring its
// resetFormAfterSubmit flag.
func FromDocument(ctx context.Context, doc descriptor.Document, opts ...Option) (*Form, error) {
	opts = append([]Option{WithResetAfterSubmit(doc.ResetFormAfterSubmit)}, opts...)
	return New(ctx, doc.Name, doc.Fields, opts...)
}

// Name returns the form name carried in submissions.
func (f *Form) Name() string {
	return f.name
}

// OnEvent registers a listener for form events.
func (f *Form) OnEvent(listener Listener) {
	if listener != nil {
		f.listeners = append(f.listeners, listener)
	}
}

// Fields returns a copy of the resolved fields in render order.
func (f *Form) Fields() []model.Field {
	return append([]model.Field{}, f.fields...)
}

// IsValid reports whether every input field currently passes validation.
func (f *Form) IsValid() bool {
	return f.isValid
}

// State returns the state of the input field with the given label.
func (f *Form) State(label string) (FieldState, bool) {
	state, ok := f.states[label]
	if !ok {
		return FieldState{}, false
	}
	return *state, true
}

// LabelForID maps a field identifier back to its label.
func (f *Form) LabelForID(id string) (string, bool) {
	label, ok := f.byID[id]
	return label, ok
}

// Values returns the current values keyed by label.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.inputs))
	for _, label := range f.inputs {
		out[label] = f.states[label].Value.Any()
	}
	return out
}

// Errors returns the messages that should currently be displayed, keyed by
// field id.
func (f *Form) Errors() map[string]string {
	return f.View().Errors()
}

// View snapshots fields and state for rendering.
func (f *Form) View() View {
	view := View{Name: f.name, Valid: f.isValid, Fields: make([]FieldView, 0, len(f.fields))}
	for _, field := range f.fields {
		fv := FieldView{Field: field}
		if state, ok := f.states[field.Label]; ok && field.IsInput() {
			fv.State = *state
			fv.State.Value = cloneValue(state.Value)
			fv.State.Initial = cloneValue(state.Initial)
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

// SetValue records a user edit. The field becomes dirty when the value
// differs from the current one and is revalidated either way.
func (f *Form) SetValue(ctx context.Context, label string, value model.Value) error {
	state, field, err := f.lookup(label)
	if err != nil {
		return err
	}

	switch {
	case field.IsMulti() && !value.IsMulti():
		value = model.List(value.Strings()...)
	case !field.IsMulti() && value.IsMulti():
		items := value.Strings()
		if len(items) > 1 {
			return fmt.Errorf("%w: %s expects a single value", ErrValueShape, label)
		}
		value = model.Text(value.String())
	}

	if !state.Value.Equal(value) {
		state.Dirty = true
	}
	state.Value = value
	f.validate(ctx, field, state)
	f.recompute()

	f.logger.Debug("form value changed", "form", f.name, "field", field.ID, "valid", state.Valid)
	return nil
}

// SetValueByID is SetValue keyed by field identifier, as used by transports
// that post ids rather than labels.
func (f *Form) SetValueByID(ctx context.Context, id string, value model.Value) error {
	label, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	return f.SetValue(ctx, label, value)
}

// Touch marks a field as visited, the equivalent of a blur. Validation runs
// again so the message reflects the latest value.
func (f *Form) Touch(ctx context.Context, label string) error {
	state, field, err := f.lookup(label)
	if err != nil {
		return err
	}
	state.Touched = true
	f.validate(ctx, field, state)
	f.recompute()
	return nil
}

// Submit packages the current values and notifies listeners. An invalid form
// is never submitted: every field is marked touched so its message becomes
// visible and an *InvalidError is returned.
func (f *Form) Submit(ctx context.Context) (Submission, error) {
	f.validateAll(ctx)
	if !f.isValid {
		invalid := &InvalidError{Fields: make(map[string]string)}
		for _, label := range f.inputs {
			state := f.states[label]
			state.Touched = true
			if !state.Valid {
				invalid.Fields[label] = state.Message
			}
		}
		f.logger.Info("form submit rejected", "form", f.name, "invalid", len(invalid.Fields))
		return Submission{}, invalid
	}

	submission := Submission{
		ID:       f.nextID(),
		FormName: f.name,
		Values:   f.Values(),
	}
	f.logger.Info("form submitted", "form", f.name, "submission", submission.ID)

	payload := submission
	payload.Values = cloneValues(submission.Values)
	f.emit(Event{Name: EventFormSubmitted, FormName: f.name, Submission: &payload})

	if f.resetAfterSubmit {
		f.Reset(ctx)
	}
	return submission, nil
}

// Reset restores every input to its initial value and clears dirty and
// touched flags. Validity is recomputed from the restored values.
func (f *Form) Reset(ctx context.Context) {
	for _, label := range f.inputs {
		state := f.states[label]
		state.Value = cloneValue(state.Initial)
		state.Dirty = false
		state.Touched = false
	}
	f.validateAll(ctx)
	f.logger.Debug("form reset", "form", f.name, "valid", f.isValid)
	f.emit(Event{Name: EventFormReset, FormName: f.name})
}

// SetFields replaces the descriptor list. Fields that keep their label and
// kind carry their value and flags across; every other field starts from its
// initial value.
func (f *Form) SetFields(ctx context.Context, descriptors []descriptor.Descriptor) error {
	previous := make(map[string]previousState, len(f.states))
	for _, field := range f.fields {
		if state, ok := f.states[field.Label]; ok {
			previous[field.Label] = previousState{kind: field.Kind, state: *state}
		}
	}
	if err := f.install(ctx, descriptors, previous); err != nil {
		return err
	}
	f.logger.Debug("form fields replaced", "form", f.name, "fields", len(f.fields), "valid", f.isValid)
	return nil
}

type previousState struct {
	kind  model.Kind
	state FieldState
}

func (f *Form) install(ctx context.Context, descriptors []descriptor.Descriptor, previous map[string]previousState) error {
	fields, err := f.resolver.Resolve(descriptors)
	if err != nil {
		return fmt.Errorf("form %s: %w", f.name, err)
	}

	states := make(map[string]*FieldState)
	byID := make(map[string]string)
	var inputs []string
	for _, field := range fields {
		if !field.IsInput() {
			continue
		}
		state := &FieldState{
			Value:   cloneValue(field.Initial),
			Initial: cloneValue(field.Initial),
		}
		if prev, ok := previous[field.Label]; ok && prev.kind == field.Kind {
			state.Value = cloneValue(prev.state.Value)
			state.Dirty = prev.state.Dirty
			state.Touched = prev.state.Touched
		}
		states[field.Label] = state
		byID[field.ID] = field.Label
		inputs = append(inputs, field.Label)
	}

	f.fields = fields
	f.states = states
	f.byID = byID
	f.inputs = inputs
	f.validateAll(ctx)
	return nil
}

func (f *Form) lookup(label string) (*FieldState, model.Field, error) {
	state, ok := f.states[label]
	if !ok {
		return nil, model.Field{}, fmt.Errorf("%w: %s", ErrUnknownField, label)
	}
	for _, field := range f.fields {
		if field.Label == label && field.IsInput() {
			return state, field, nil
		}
	}
	return nil, model.Field{}, fmt.Errorf("%w: %s", ErrUnknownField, label)
}

func (f *Form) validate(ctx context.Context, field model.Field, state *FieldState) {
	result := f.validator.Validate(ctx, field, state.Value)
	state.Valid = result.Valid
	state.Rule = result.Rule
	state.Message = result.Message
}

func (f *Form) validateAll(ctx context.Context) {
	for _, field := range f.fields {
		if state, ok := f.states[field.Label]; ok && field.IsInput() {
			f.validate(ctx, field, state)
		}
	}
	f.recompute()
}

func (f *Form) recompute() {
	valid := true
	for _, label := range f.inputs {
		if !f.states[label].Valid {
			valid = false
			break
		}
	}
	f.isValid = valid
}

func (f *Form) emit(event Event) {
	for _, listener := range f.listeners {
		listener(event)
	}
}

func cloneValue(v model.Value) model.Value {
	if v.IsMulti() {
		return model.List(v.Strings()...)
	}
	return v
}
