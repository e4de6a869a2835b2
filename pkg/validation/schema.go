package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-dynform/pkg/model"
)

// rulePrecedence decides which message wins when several constraints fail.
var rulePrecedence = []string{
	model.ValidationRuleRequired,
	RuleNumeric,
	model.ValidationRuleMinLength,
	model.ValidationRuleMaxLength,
	model.ValidationRuleMin,
	model.ValidationRuleMax,
	model.ValidationRulePattern,
	model.ValidationRuleEmail,
}

var keywordRules = map[string]string{
	"minLength": model.ValidationRuleMinLength,
	"maxLength": model.ValidationRuleMaxLength,
	"pattern":   model.ValidationRulePattern,
	"format":    model.ValidationRuleEmail,
	"minimum":   model.ValidationRuleMin,
	"maximum":   model.ValidationRuleMax,
	"type":      RuleNumeric,
}

// SchemaOption configures a SchemaValidator.
type SchemaOption func(*SchemaValidator)

// WithMessages overrides individual message templates.
func WithMessages(messages Messages) SchemaOption {
	return func(v *SchemaValidator) {
		v.messages = v.messages.merge(messages)
	}
}

// SchemaValidator compiles each field's constraints into a Draft 2020-12 JSON
// Schema and validates values against it. Compiled schemas are cached by their
// document so one validator can serve many forms concurrently.
type SchemaValidator struct {
	messages Messages

	mu    sync.Mutex
	cache map[string]*jsonschema.Schema
}

// Ensure SchemaValidator satisfies the Validator interface.
var _ Validator = (*SchemaValidator)(nil)

// NewSchemaValidator constructs a validator with the default messages.
func NewSchemaValidator(options ...SchemaOption) *SchemaValidator {
	v := &SchemaValidator{
		messages: DefaultMessages(),
		cache:    make(map[string]*jsonschema.Schema),
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks value against field. Empty values only fail the required
// rule; the remaining constraints apply once something has been entered.
func (v *SchemaValidator) Validate(_ context.Context, field model.Field, value model.Value) Result {
	if !field.IsInput() {
		return Valid()
	}

	if value.IsEmpty() {
		if field.Required {
			return v.fail(field, model.ValidationRuleRequired)
		}
		return Valid()
	}

	instance, ok := instanceFor(field, value)
	if !ok {
		return v.fail(field, RuleNumeric)
	}

	schema, err := v.schemaFor(field)
	if err != nil {
		return v.fail(field, RuleSchema)
	}

	err = schema.Validate(instance)
	if err == nil {
		return Valid()
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return v.fail(field, RuleSchema)
	}
	return v.fail(field, pickRule(failedRules(validationErr)))
}

func (v *SchemaValidator) fail(field model.Field, rule string) Result {
	return Result{Valid: false, Rule: rule, Message: v.messages.Format(field, rule)}
}

func (v *SchemaValidator) schemaFor(field model.Field) (*jsonschema.Schema, error) {
	doc, err := json.Marshal(SchemaDocument(field))
	if err != nil {
		return nil, fmt.Errorf("validation: marshal schema for %s: %w", field.ID, err)
	}
	key := string(doc)

	v.mu.Lock()
	defer v.mu.Unlock()

	if compiled, ok := v.cache[key]; ok {
		return compiled, nil
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	url := field.ID + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("validation: add schema for %s: %w", field.ID, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema for %s: %w", field.ID, err)
	}
	v.cache[key] = compiled
	return compiled, nil
}

// SchemaDocument returns the JSON Schema used to validate non-empty values of
// field. The required rule is handled before schema validation and never
// appears here.
func SchemaDocument(field model.Field) map[string]any {
	doc := map[string]any{}

	switch {
	case field.IsMulti():
		doc["type"] = "array"
		doc["items"] = map[string]any{"type": "string"}
		return doc
	case field.Kind == model.KindNumber:
		doc["type"] = "number"
	default:
		doc["type"] = "string"
	}

	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				doc["minLength"] = n
			}
		case model.ValidationRuleMaxLength:
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				doc["maxLength"] = n
			}
		case model.ValidationRuleMin:
			if f, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				doc["minimum"] = f
			}
		case model.ValidationRuleMax:
			if f, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				doc["maximum"] = f
			}
		case model.ValidationRulePattern:
			if expr := rule.Params["pattern"]; expr != "" {
				doc["pattern"] = expr
			}
		case model.ValidationRuleEmail:
			doc["format"] = "email"
		}
	}
	return doc
}

func instanceFor(field model.Field, value model.Value) (any, bool) {
	if field.IsMulti() {
		items := value.Strings()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, item)
		}
		return out, true
	}
	if field.Kind == model.KindNumber {
		raw := strings.TrimSpace(value.String())
		if strings.ContainsAny(raw, "xX") {
			return nil, false
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
			return nil, false
		}
		return n, true
	}
	return value.String(), true
}

func failedRules(err *jsonschema.ValidationError) map[string]struct{} {
	out := make(map[string]struct{})
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			keyword := e.KeywordLocation
			if idx := strings.LastIndex(keyword, "/"); idx >= 0 {
				keyword = keyword[idx+1:]
			}
			if rule, ok := keywordRules[keyword]; ok {
				out[rule] = struct{}{}
			}
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	return out
}

func pickRule(failed map[string]struct{}) string {
	for _, rule := range rulePrecedence {
		if _, ok := failed[rule]; ok {
			return rule
		}
	}
	return RuleSchema
}
