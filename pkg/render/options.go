package render

const (
	DefaultMethod      = "post"
	DefaultSubmitLabel = "Submit"
	DefaultResetLabel  = "Reset"
)

// RenderOptions describe per-request data renderers use to customise their
// output without touching form state.
type RenderOptions struct {
	// Action is the form target. Empty keeps the browser default.
	Action string
	// Method defaults to DefaultMethod.
	Method string
	// HasIcon toggles the warning icon next to invalid controls. Nil means on.
	HasIcon *bool
	// EnableSubmit keeps the submit button usable while the form is invalid.
	// Server validated forms set it so browsers without scripting can post.
	EnableSubmit bool
	// SubmitLabel and ResetLabel override the action button captions.
	SubmitLabel string
	ResetLabel  string
	// Slots maps slot names to trusted caller markup. Unfilled slots render
	// as empty placeholders.
	Slots map[string]string
	// Hidden adds hidden inputs, for example a CSRF token.
	Hidden map[string]string
	// Errors adds server side messages keyed by field id. They are shown
	// regardless of the field's dirty or touched flags.
	Errors map[string][]string
	// FormErrors are rendered above the fields.
	FormErrors []string
	// Locale and Translator localise labels, help texts and button captions.
	// Keys are the field ids ("first-name.label") and "form.submit" /
	// "form.reset".
	Locale     string
	Translator Translator
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// WithDefaults returns a copy with empty settings filled in.
func (o RenderOptions) WithDefaults() RenderOptions {
	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if o.SubmitLabel == "" {
		o.SubmitLabel = DefaultSubmitLabel
	}
	if o.ResetLabel == "" {
		o.ResetLabel = DefaultResetLabel
	}
	if o.HasIcon == nil {
		on := true
		o.HasIcon = &on
	}
	return o
}

// IconEnabled reports whether warning icons should be rendered.
func (o RenderOptions) IconEnabled() bool {
	return o.HasIcon == nil || *o.HasIcon
}
