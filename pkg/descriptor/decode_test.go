package descriptor_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

func TestParse_YAMLDocument(t *testing.T) {
	doc, err := descriptor.Parse([]byte(testsupport.ContactFormYAML), "contact.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Name != testsupport.ContactFormName {
		t.Fatalf("expected name %q, got %q", testsupport.ContactFormName, doc.Name)
	}
	if diff := cmp.Diff(testsupport.ContactForm(), doc.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONList(t *testing.T) {
	raw := `[
  [{"label": "x"}, {"label": "y", "parentClass": "yClass"}],
  {"slot": "slotName", "parentClass": "slotClass"},
  {"html": "<p class=custom-content>content</p>", "parentClass": "htmlClass"},
  {"label": "Radio0", "type": "radio", "items": [{"text": "vRadioOne", "checked": true}, "vRadioTwo"]},
  {"label": "plop", "isRequired": false, "showLabel": false, "min": 1.5}
]`
	doc, err := descriptor.Parse([]byte(raw), "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []descriptor.Descriptor{
		descriptor.Group{
			descriptor.Field{Label: "x"},
			descriptor.Field{Label: "y", ParentClass: "yClass"},
		},
		descriptor.Slot{Name: "slotName", ParentClass: "slotClass"},
		descriptor.HTML{Content: "<p class=custom-content>content</p>", ParentClass: "htmlClass"},
		descriptor.Field{
			Label: "Radio0",
			Type:  "radio",
			Items: []descriptor.Choice{{Text: "vRadioOne", Checked: true}, {Text: "vRadioTwo"}},
		},
		descriptor.Field{
			Label:      "plop",
			IsRequired: descriptor.Bool(false),
			ShowLabel:  descriptor.Bool(false),
			Min:        descriptor.Float(1.5),
		},
	}
	if diff := cmp.Diff(want, doc.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InvalidDescriptors(t *testing.T) {
	cases := map[string]struct {
		raw  string
		path string
	}{
		"no mode key":        {raw: `[{"placeholder": "x"}]`, path: "fields[0]"},
		"two mode keys":      {raw: `[{"label": "a", "slot": "b"}]`, path: "fields[0]"},
		"scalar entry":       {raw: `[[{"label": "a"}, 42]]`, path: "fields[0][1]"},
		"bad minLength":      {raw: `[{"label": "a", "minLength": -2}]`, path: "fields[0]"},
		"bad choice":         {raw: `[{"label": "a", "type": "radio", "items": [{}]}]`, path: "fields[0]"},
		"non boolean toggle": {raw: `[{"label": "a", "isRequired": "maybe"}]`, path: "fields[0]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := descriptor.Parse([]byte(tc.raw), "inline.json")
			if !errors.Is(err, descriptor.ErrInvalidFieldDescriptor) {
				t.Fatalf("expected ErrInvalidFieldDescriptor, got %v", err)
			}
			var descErr *descriptor.DescriptorError
			if !errors.As(err, &descErr) {
				t.Fatalf("expected DescriptorError, got %T", err)
			}
			if descErr.Path != tc.path {
				t.Fatalf("expected path %q, got %q", tc.path, descErr.Path)
			}
		})
	}
}

func TestParse_RejectsMalformedDocuments(t *testing.T) {
	for _, raw := range []string{"", "   ", `"just a string"`, `{"name": "x"}`, `{"fields": {"label": "a"}}`} {
		if _, err := descriptor.Parse([]byte(raw), "bad"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.yaml": {Data: []byte(testsupport.ContactFormYAML)},
		"forms/login.json":   {Data: []byte(`[{"label": "User"}, {"label": "Password", "type": "password"}]`)},
		"forms/README.md":    {Data: []byte("ignored")},
	}

	docs, err := descriptor.LoadDir(fsys)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if _, ok := docs[testsupport.ContactFormName]; !ok {
		t.Fatalf("expected contact form keyed by declared name")
	}
	login, ok := docs["login"]
	if !ok {
		t.Fatalf("expected login form keyed by file name")
	}
	if len(login.Fields) != 2 {
		t.Fatalf("expected 2 login fields, got %d", len(login.Fields))
	}
}

func TestLoadDir_DuplicateNames(t *testing.T) {
	fsys := fstest.MapFS{
		"a/signup.json": {Data: []byte(`[{"label": "A"}]`)},
		"b/signup.yml":  {Data: []byte("- label: B\n")},
	}
	_, err := descriptor.LoadDir(fsys)
	if err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}
