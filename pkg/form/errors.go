package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrFormNameRequired is returned when a form is built without a name.
	ErrFormNameRequired = errors.New("form: name is required")
	// ErrUnknownField is returned when a label or id matches no input field.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrValueShape is returned when a list is assigned to a single valued field.
	ErrValueShape = errors.New("form: value shape does not match field")
	// ErrFormInvalid is returned by Submit while at least one field is invalid.
	ErrFormInvalid = errors.New("form: form is invalid")
)

// InvalidError lists the failing fields of a rejected submit, keyed by label.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string {
	labels := make([]string, 0, len(e.Fields))
	for label := range e.Fields {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return fmt.Sprintf("%s: %s", ErrFormInvalid, strings.Join(labels, ", "))
}

// Unwrap lets callers match with errors.Is(err, ErrFormInvalid).
func (e *InvalidError) Unwrap() error {
	return ErrFormInvalid
}
