package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/goliatone/go-dynform/pkg/renderers/tui"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

const signupSpec = `openapi: 3.0.3
info: {title: signup, version: "1"}
paths:
  /signup:
    post:
      operationId: signup
      summary: Create an account
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                email: {type: string, format: email}
                nickname: {type: string, minLength: 3}
      responses:
        "201": {description: created}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestCheck_JSON(t *testing.T) {
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)

	out, err := execute(t, "check", path, "--format", "json")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var report checkReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Name != testsupport.ContactFormName || report.Valid {
		t.Fatalf("unexpected report header %+v", report)
	}
	if len(report.Fields) != 11 || report.Fields[0].ID != "first-name" {
		t.Fatalf("unexpected fields %+v", report.Fields)
	}
	if len(report.Slots) != 1 || report.Slots[0] != "terms" {
		t.Fatalf("unexpected slots %v", report.Slots)
	}
}

func TestCheck_Table(t *testing.T) {
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)

	out, err := execute(t, "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "first-name") || !strings.Contains(out, "ID") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestCheck_RejectsDuplicateIdentifiers(t *testing.T) {
	path := writeFile(t, "dup.yaml", "name: dup\nfields:\n  - label: Name\n  - label: name\n")

	if _, err := execute(t, "check", path); err == nil {
		t.Fatalf("expected duplicate identifier error")
	}
}

func TestCheck_RequiresSource(t *testing.T) {
	if _, err := execute(t, "check"); err == nil {
		t.Fatalf("expected missing source error")
	}
}

func TestRender_HTML(t *testing.T) {
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)

	out, err := execute(t, "render", path, "--action", "/contact", "--no-icon")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `action="/contact"`) {
		t.Fatalf("expected action in output:\n%s", out)
	}
	if strings.Contains(out, "fa-exclamation-triangle") {
		t.Fatalf("expected icons to be hidden")
	}
}

func TestRender_RendererFromEnvironment(t *testing.T) {
	t.Setenv("DYNFORM_RENDERER", "tui")
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)

	out, err := execute(t, "render", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, testsupport.ContactFormName+"\n") || !strings.HasSuffix(out, "[invalid]\n") {
		t.Fatalf("expected tui summary, got:\n%s", out)
	}
}

func TestRender_ConfigFileAndPreset(t *testing.T) {
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)
	preset := writeFile(t, "preset.yaml", "fields:\n  First Name:\n    value: Grace\n")
	config := writeFile(t, "dynform.yaml", "renderer: tui\npreset: "+preset+"\n")

	out, err := execute(t, "render", path, "--config", config)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "  First Name *: Grace\n") {
		t.Fatalf("expected preset value in summary:\n%s", out)
	}
}

func TestRender_OpenAPI(t *testing.T) {
	spec := writeFile(t, "openapi.yaml", signupSpec)

	out, err := execute(t, "render", "--openapi", spec, "--operation", "signup", "--renderer", "tui")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"signup\n", "  Email *: \n", "  Nickname: \n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}

	if _, err := execute(t, "render", "--openapi", spec); err == nil {
		t.Fatalf("expected --operation to be required")
	}
}

func TestOperations(t *testing.T) {
	spec := writeFile(t, "openapi.yaml", signupSpec)

	out, err := execute(t, "operations", "--openapi", spec)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if !strings.Contains(out, "signup") || !strings.Contains(out, "Create an account") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
}

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) { return 0, nil }

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return []int{0}, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message})
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestPrompt_PrettyOutput(t *testing.T) {
	previous := newPromptDriver
	t.Cleanup(func() { newPromptDriver = previous })
	newPromptDriver = func() tui.PromptDriver {
		return &scriptedDriver{inputs: []string{"ada@example.com", "ada"}}
	}

	spec := writeFile(t, "openapi.yaml", signupSpec)
	out, err := execute(t, "prompt", "--openapi", spec, "--operation", "signup", "--format", "pretty", "--confirm")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if out != "Email=ada@example.com\nNickname=ada\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPrompt_InvalidFormat(t *testing.T) {
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)
	if _, err := execute(t, "prompt", path, "--format", "xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestServe_Router(t *testing.T) {
	path := writeFile(t, "contact.yaml", testsupport.ContactFormYAML)
	a := &app{
		config: viper.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdout: io.Discard,
		stderr: io.Discard,
	}
	a.config.Set("route", "/contact")
	a.config.Set("renderer", "bulma")

	router, err := a.router([]string{path})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	server := httptest.NewServer(router)
	defer server.Close()

	res, err := http.Get(server.URL + "/contact")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK || !strings.Contains(string(body), `name="_form" value="testFormName"`) {
		t.Fatalf("unexpected response %d:\n%s", res.StatusCode, body)
	}

	res, err = http.PostForm(server.URL+"/contact", map[string][]string{"first-name": {"ab"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}

	res, err = http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
}
