package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/bulma"
)

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [descriptors.yaml]",
		Short: "Render a form to stdout or a file",
		Long: `Render the form described by a descriptor file (or an OpenAPI operation)
with the selected renderer. The bulma renderer emits HTML; the tui renderer
emits a plain text outline of the fields and their current state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args)
		},
	}
	flags := cmd.Flags()
	flags.String("renderer", bulma.Name, "renderer name: bulma, tui")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("action", "", "form action attribute")
	flags.String("method", render.DefaultMethod, "form method attribute")
	flags.Bool("no-icon", false, "hide the warning icon next to invalid fields")
	flags.Bool("enable-submit", false, "keep the submit button enabled while the form is invalid")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	source, err := a.source(args)
	if err != nil {
		return err
	}
	gen, err := a.orchestrator()
	if err != nil {
		return err
	}

	opts := render.RenderOptions{
		Action:       a.config.GetString("action"),
		Method:       a.config.GetString("method"),
		EnableSubmit: a.config.GetBool("enable-submit"),
	}
	if a.config.GetBool("no-icon") {
		off := false
		opts.HasIcon = &off
	}

	out, err := gen.Generate(cmd.Context(), orchestrator.Request{
		Source:        source,
		Renderer:      a.config.GetString("renderer"),
		RenderOptions: opts,
	})
	if err != nil {
		return err
	}

	if path := a.config.GetString("output"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		a.logger.Info("form written", "path", path, "bytes", len(out))
		return nil
	}
	_, err = a.stdout.Write(out)
	return err
}
