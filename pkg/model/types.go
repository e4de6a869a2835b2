package model

import internalmodel "github.com/goliatone/go-dynform/internal/model"

// Mode re-exports the internal rendering mode enumeration.
type Mode = internalmodel.Mode

const (
	ModeInput = internalmodel.ModeInput
	ModeHTML  = internalmodel.ModeHTML
	ModeSlot  = internalmodel.ModeSlot
)

// Kind re-exports the internal input kind enumeration.
type Kind = internalmodel.Kind

const (
	KindText     = internalmodel.KindText
	KindEmail    = internalmodel.KindEmail
	KindPassword = internalmodel.KindPassword
	KindTel      = internalmodel.KindTel
	KindNumber   = internalmodel.KindNumber
	KindURL      = internalmodel.KindURL
	KindDate     = internalmodel.KindDate
	KindTextarea = internalmodel.KindTextarea
	KindRadio    = internalmodel.KindRadio
	KindCheckbox = internalmodel.KindCheckbox
	KindSelect   = internalmodel.KindSelect
)

const (
	ValidationRuleRequired  = internalmodel.ValidationRuleRequired
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
	ValidationRuleEmail     = internalmodel.ValidationRuleEmail
)

type ValidationRule = internalmodel.ValidationRule
type Choice = internalmodel.Choice
type Field = internalmodel.Field
type Value = internalmodel.Value

var (
	ErrDuplicateIdentifier = internalmodel.ErrDuplicateIdentifier
	ErrInvalidPattern      = internalmodel.ErrInvalidPattern
)

// Text builds a single valued Value.
func Text(s string) Value { return internalmodel.Text(s) }

// List builds a multi valued Value.
func List(items ...string) Value { return internalmodel.List(items...) }

// DefaultLabeler turns a machine name into a human label ("first_name" ->
// "First Name").
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }
