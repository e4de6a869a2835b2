package render

import (
	"strings"

	"github.com/goliatone/go-dynform/pkg/form"
)

// FieldMessages combines the visible validation messages of view with the
// server side messages in extra. The result is keyed by field id; unknown ids
// in extra are returned separately so they can be shown at form level.
func FieldMessages(view form.View, extra map[string][]string) (map[string][]string, []string) {
	out := make(map[string][]string)
	for id, message := range view.Errors() {
		out[id] = []string{message}
	}

	known := make(map[string]struct{}, len(view.Fields))
	for _, fv := range view.Fields {
		if fv.Field.IsInput() {
			known[fv.Field.ID] = struct{}{}
		}
	}

	var orphaned []string
	for id, messages := range extra {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		if _, ok := known[strings.TrimSpace(id)]; !ok {
			orphaned = append(orphaned, normalized...)
			continue
		}
		id = strings.TrimSpace(id)
		out[id] = normalizeMessages(append(out[id], normalized...))
	}
	return out, normalizeMessages(orphaned)
}

// MergeFormErrors concatenates form level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
