package render

import "strings"

// Translator resolves a localisation key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler returns the string to use when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_, _, fallback string, _ error) string {
	return fallback
}

// Translate resolves key through the configured translator, falling back to
// fallback when the translator is absent. Failed lookups go through
// OnMissing.
func (o RenderOptions) Translate(key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" || o.Translator == nil {
		return fallback
	}

	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	result, err := o.Translator.Translate(o.Locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(o.Locale, key, fallback, err)
}
