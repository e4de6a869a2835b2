package model

import "errors"

var (
	// ErrDuplicateIdentifier reports two labels that slugify to the same id.
	ErrDuplicateIdentifier = errors.New("model builder: duplicate field identifier")
	// ErrInvalidPattern reports a pattern that does not compile.
	ErrInvalidPattern = errors.New("model builder: invalid pattern")
)
