package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/model"
)

var (
	// ErrEmptyDocument is returned for empty payloads.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no object body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

// OrderExtension ranks properties. Ranked properties come first, the rest
// follow by name.
const OrderExtension = "x-dynform-order"

// Operation summarises an operation that can be turned into a form.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Option configures an Importer.
type Option func(*Importer)

// WithLabeler overrides how property names become labels when a schema has
// no title.
func WithLabeler(labeler func(string) string) Option {
	return func(i *Importer) {
		if labeler != nil {
			i.labeler = labeler
		}
	}
}

// WithValidation validates the document before importing.
func WithValidation(enabled bool) Option {
	return func(i *Importer) {
		i.validate = enabled
	}
}

// WithLogger attaches a structured logger. Skipped properties are reported
// at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer loads OpenAPI documents and maps request bodies to descriptors.
type Importer struct {
	labeler  func(string) string
	validate bool
	logger   *slog.Logger
}

// NewImporter constructs an Importer with the default labeler.
func NewImporter(options ...Option) *Importer {
	i := &Importer{
		labeler: model.DefaultLabeler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Descriptors is a shortcut for NewImporter().Descriptors.
func Descriptors(ctx context.Context, data []byte, operationID string) (descriptor.Document, error) {
	return NewImporter().Descriptors(ctx, data, operationID)
}

// Operations lists every operation in the document that has a request body,
// sorted by id. Operations without an operationId are keyed "method:path".
func (i *Importer) Operations(ctx context.Context, data []byte) ([]Operation, error) {
	spec, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}

	var out []Operation
	for _, op := range collect(spec) {
		if op.operation.RequestBody != nil {
			out = append(out, op.Operation)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

// Descriptors maps the request body of operationID to a descriptor document
// named after the operation.
func (i *Importer) Descriptors(ctx context.Context, data []byte, operationID string) (descriptor.Document, error) {
	spec, err := i.load(ctx, data)
	if err != nil {
		return descriptor.Document{}, err
	}

	for _, op := range collect(spec) {
		if op.ID != operationID {
			continue
		}
		schema := requestSchema(op.operation.RequestBody)
		if schema == nil || len(schema.Properties) == 0 {
			return descriptor.Document{}, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
		}
		fields := i.fields(schema)
		if len(fields) == 0 {
			return descriptor.Document{}, fmt.Errorf("%w: %s has no scalar properties", ErrNoRequestBody, operationID)
		}
		return descriptor.Document{Name: operationID, Fields: fields}, nil
	}
	return descriptor.Document{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
}

func (i *Importer) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if i.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

type located struct {
	Operation
	operation *openapi3.Operation
}

func collect(spec *openapi3.T) []located {
	if spec.Paths == nil {
		return nil
	}
	var out []located
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, located{
				Operation: Operation{ID: id, Method: strings.ToUpper(method), Path: path, Summary: operation.Summary},
				operation: operation,
			})
		}
	}
	return out
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (i *Importer) fields(schema *openapi3.Schema) []descriptor.Descriptor {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(a, b int) bool {
		oa, okA := order(schema.Properties[names[a]])
		ob, okB := order(schema.Properties[names[b]])
		if okA != okB {
			return okA
		}
		if oa != ob {
			return oa < ob
		}
		return names[a] < names[b]
	})

	var out []descriptor.Descriptor
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := i.field(name, ref.Value, required[name])
		if !ok {
			i.logger.Debug("openapi property skipped", "property", name, "type", typeOf(ref.Value))
			continue
		}
		out = append(out, field)
	}
	return out
}

func (i *Importer) field(name string, prop *openapi3.Schema, required bool) (descriptor.Field, bool) {
	label := strings.TrimSpace(prop.Title)
	if label == "" {
		label = i.labeler(name)
	}
	field := descriptor.Field{
		Label:      label,
		Help:       prop.Description,
		IsRequired: descriptor.Bool(required),
	}

	switch typeOf(prop) {
	case "boolean":
		field.Type = string(model.KindCheckbox)
		field.Items = []descriptor.Choice{{Text: label, Value: "true", Checked: prop.Default == true}}
		return field, true
	case "integer", "number":
		field.Type = string(model.KindNumber)
		field.Min = prop.Min
		field.Max = prop.Max
		field.Value = scalar(prop.Default)
		return field, true
	case "array":
		if prop.Items == nil || prop.Items.Value == nil || len(prop.Items.Value.Enum) == 0 {
			return field, false
		}
		field.Type = string(model.KindCheckbox)
		defaults := make(map[string]bool)
		if list, ok := prop.Default.([]any); ok {
			for _, v := range list {
				defaults[scalar(v)] = true
			}
		}
		for _, v := range prop.Items.Value.Enum {
			text := scalar(v)
			field.Items = append(field.Items, descriptor.Choice{Text: text, Checked: defaults[text]})
		}
		return field, true
	case "string", "":
		if len(prop.Enum) > 0 {
			field.Type = string(model.KindSelect)
			def := scalar(prop.Default)
			for _, v := range prop.Enum {
				text := scalar(v)
				field.Options = append(field.Options, descriptor.Choice{Text: text, Selected: def != "" && text == def})
			}
			return field, true
		}
		field.Type = stringKind(prop.Format)
		field.Pattern = prop.Pattern
		if prop.MinLength > 0 {
			field.MinLength = descriptor.Int(int(prop.MinLength))
		}
		if prop.MaxLength != nil {
			field.MaxLength = descriptor.Int(int(*prop.MaxLength))
		}
		field.Value = scalar(prop.Default)
		return field, true
	}
	return field, false
}

func stringKind(format string) string {
	switch strings.ToLower(format) {
	case "email":
		return string(model.KindEmail)
	case "password":
		return string(model.KindPassword)
	case "date":
		return string(model.KindDate)
	case "uri", "url":
		return string(model.KindURL)
	case "textarea":
		return string(model.KindTextarea)
	}
	return string(model.KindText)
}

func typeOf(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, t := range schema.Type.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func order(ref *openapi3.SchemaRef) (float64, bool) {
	if ref == nil || ref.Value == nil {
		return 0, false
	}
	switch v := ref.Value.Extensions[OrderExtension].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func scalar(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprint(value)
	default:
		return fmt.Sprint(value)
	}
}
