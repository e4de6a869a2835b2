package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

// newPromptDriver is swapped in tests for a scripted driver.
var newPromptDriver = tui.NewSurveyDriver

func newPromptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [descriptors.yaml]",
		Short: "Fill in a form interactively",
		Long: `Ask for every field in order, re-asking while the answer is invalid, then
submit the form and print the submission. Interrupting a prompt aborts
without output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrompt(cmd, args, newPromptDriver())
		},
	}
	flags := cmd.Flags()
	flags.String("format", string(tui.OutputFormatJSON), "submission format: json, form, pretty")
	flags.Bool("confirm", false, "ask for confirmation before submitting")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	return cmd
}

func (a *app) runPrompt(cmd *cobra.Command, args []string, driver tui.PromptDriver) error {
	format := tui.OutputFormat(a.config.GetString("format"))
	switch format {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return fmt.Errorf("invalid format: %s (valid: json, form, pretty)", format)
	}

	source, err := a.source(args)
	if err != nil {
		return err
	}
	gen, err := a.orchestrator()
	if err != nil {
		return err
	}
	f, _, err := gen.Build(cmd.Context(), source)
	if err != nil {
		return err
	}

	renderer := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(format),
		tui.WithConfirmSubmit(a.config.GetBool("confirm")),
		tui.WithLogger(a.logger),
	)
	out, err := renderer.Prompt(cmd.Context(), f, render.RenderOptions{})
	if err != nil {
		return err
	}

	if path := a.config.GetString("output"); path != "" {
		return os.WriteFile(path, out, 0o644)
	}
	if _, err := a.stdout.Write(out); err != nil {
		return err
	}
	if format != tui.OutputFormatPrettyText {
		_, err = fmt.Fprintln(a.stdout)
	}
	return err
}
