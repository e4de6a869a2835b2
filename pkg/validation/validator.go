package validation

import (
	"context"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

const (
	// RuleNumeric reports a number field whose value does not parse as a number.
	RuleNumeric = "numeric"
	// RuleSchema reports a constraint set that could not be evaluated.
	RuleSchema = "schema"
)

// Result is the outcome of validating one field value. Rule names the failing
// constraint using the model.ValidationRule* identifiers (or RuleNumeric);
// it is empty when Valid is true.
type Result struct {
	Valid   bool   `json:"valid"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// Valid is the result for a value that satisfies every constraint.
func Valid() Result {
	return Result{Valid: true}
}

// Validator checks a field value against the field's constraints. Failing
// validation is an ordinary result, never an error.
type Validator interface {
	Validate(ctx context.Context, field model.Field, value model.Value) Result
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, field model.Field, value model.Value) Result

// Validate calls fn.
func (fn ValidatorFunc) Validate(ctx context.Context, field model.Field, value model.Value) Result {
	return fn(ctx, field, value)
}

// Messages maps a rule name to a message template. {field} expands to the field
// label and {value} to the rule threshold.
type Messages map[string]string

// DefaultMessages returns the English message catalogue.
func DefaultMessages() Messages {
	return Messages{
		model.ValidationRuleRequired:  "The {field} field is required.",
		model.ValidationRuleMinLength: "The {field} field must be at least {value} characters.",
		model.ValidationRuleMaxLength: "The {field} field may not be greater than {value} characters.",
		model.ValidationRulePattern:   "The {field} field format is invalid.",
		model.ValidationRuleEmail:     "The {field} field must be a valid email.",
		model.ValidationRuleMin:       "The {field} field must be {value} or more.",
		model.ValidationRuleMax:       "The {field} field must be {value} or less.",
		RuleNumeric:                   "The {field} field must be numeric and may contain decimal points.",
		RuleSchema:                    "The {field} field could not be validated.",
	}
}

// Format renders the message for rule on field.
func (m Messages) Format(field model.Field, rule string) string {
	template, ok := m[rule]
	if !ok {
		template = "The {field} field is invalid."
	}
	threshold := ""
	if r, ok := field.Rule(rule); ok {
		threshold = r.Params["value"]
	}
	return strings.NewReplacer("{field}", field.Label, "{value}", threshold).Replace(template)
}

func (m Messages) merge(overrides Messages) Messages {
	out := make(Messages, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}
