package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined the
	// final confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when the renderer was built without a driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
	// ErrNoChoices is returned for a required choice field without options.
	ErrNoChoices = errors.New("tui: required field has no choices")
)
