package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, form.View, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("bulma"))
	registry.MustRegister(namedRenderer("tui"))

	if err := registry.Register(namedRenderer("bulma")); !errors.Is(err, render.ErrRendererExists) {
		t.Fatalf("expected ErrRendererExists, got %v", err)
	}
	if _, err := registry.Get("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	fallback, err := registry.Get("")
	if err != nil || fallback.Name() != "bulma" {
		t.Fatalf("expected first registration as default, got %v %v", fallback, err)
	}
	if err := registry.SetDefault("tui"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	fallback, _ = registry.Get("")
	if fallback.Name() != "tui" {
		t.Fatalf("expected tui default, got %s", fallback.Name())
	}

	if diff := cmp.Diff([]string{"bulma", "tui"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
}

func TestRenderOptions_WithDefaults(t *testing.T) {
	opts := render.RenderOptions{}.WithDefaults()
	if opts.Method != render.DefaultMethod || opts.SubmitLabel != render.DefaultSubmitLabel || opts.ResetLabel != render.DefaultResetLabel {
		t.Fatalf("unexpected defaults %+v", opts)
	}
	if !opts.IconEnabled() {
		t.Fatalf("icons are enabled by default")
	}

	off := false
	if (render.RenderOptions{HasIcon: &off}).WithDefaults().IconEnabled() {
		t.Fatalf("explicit false must disable icons")
	}
}

func TestFieldMessages(t *testing.T) {
	f, err := form.New(testsupport.Context(), testsupport.ContactFormName, testsupport.ContactForm())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if err := f.SetValue(testsupport.Context(), "Email", model.Text("taken@aol.fr")); err != nil {
		t.Fatalf("set: %v", err)
	}

	fields, orphaned := render.FieldMessages(f.View(), map[string][]string{
		"email":   {" Address already registered ", "Address already registered"},
		"missing": {"Something went wrong"},
		"zip":     {"  "},
	})

	want := map[string][]string{
		"first-name": {"The First Name field must be at least 4 characters."},
		"email":      {"Address already registered"},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("field messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Something went wrong"}, orphaned); diff != "" {
		t.Fatalf("orphaned mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"a", " b "}, "b", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHiddenFields(t *testing.T) {
	merged := render.MergeHiddenFields(
		map[string]string{" _csrf ": "old", "": "dropped"},
		render.CSRFToken("_csrf", "token"),
		render.Hidden(render.FormNameField, testsupport.ContactFormName),
	)
	want := []render.HiddenField{
		{Name: "_csrf", Value: "token"},
		{Name: render.FormNameField, Value: testsupport.ContactFormName},
	}
	if diff := cmp.Diff(want, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate(t *testing.T) {
	translator := render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "fr" && key == "form.submit" {
			return "Envoyer", nil
		}
		return "", errors.New("missing")
	})

	opts := render.RenderOptions{Locale: "fr", Translator: translator}
	if got := opts.Translate("form.submit", "Submit"); got != "Envoyer" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := opts.Translate("form.reset", "Reset"); got != "Reset" {
		t.Fatalf("expected fallback, got %q", got)
	}

	var missed []string
	opts.OnMissing = func(_, key, fallback string, _ error) string {
		missed = append(missed, key)
		return "[" + fallback + "]"
	}
	if got := opts.Translate("form.reset", "Reset"); got != "[Reset]" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if diff := cmp.Diff([]string{"form.reset"}, missed); diff != "" {
		t.Fatalf("missed mismatch (-want +got):\n%s", diff)
	}

	if got := (render.RenderOptions{}).Translate("form.submit", "Submit"); got != "Submit" {
		t.Fatalf("no translator must return fallback, got %q", got)
	}
}
