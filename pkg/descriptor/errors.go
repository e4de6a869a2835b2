package descriptor

import (
	"errors"
	"fmt"
)

// ErrInvalidFieldDescriptor reports a descriptor that matches none of the
// recognised shapes (labeled field, html fragment, slot, group).
var ErrInvalidFieldDescriptor = errors.New("descriptor: invalid field descriptor")

// DescriptorError locates a malformed descriptor inside a document using an
// index path such as fields[2][1].
type DescriptorError struct {
	Path   string
	Reason string
}

func (e *DescriptorError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidFieldDescriptor, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s", ErrInvalidFieldDescriptor, e.Path, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidFieldDescriptor).
func (e *DescriptorError) Unwrap() error {
	return ErrInvalidFieldDescriptor
}

func invalid(path, format string, args ...any) error {
	return &DescriptorError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
