// Package model defines the resolved field specifications renderers and the
// form state consume. Resolution lives in internal/model and is exposed here
// through Resolver.
//
// Every labeled descriptor resolves to a ModeInput field whose ID is the slug
// of its label; ids are unique within one form. Input kind defaults to text,
// fields are required and show their label unless told otherwise. Constraints
// become ValidationRule entries using canonical kinds (required, min/max,
// minLength/maxLength, pattern, email) with string parameters so renderers can
// map them onto HTML attributes and validators can compile them. Radio,
// checkbox and select fields derive their initial value from the items or
// options flagged checked/selected. Html and slot descriptors resolve to
// ModeHTML/ModeSlot entries that never contribute a value.
package model
