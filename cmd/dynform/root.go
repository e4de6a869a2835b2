package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "DYNFORM"

// app carries the state shared by every command: configuration, logger and
// output streams.
type app struct {
	config  *viper.Viper
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{config: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "dynform",
		Short: "Render and collect declarative forms",
		Long: `dynform turns a list of field descriptors (JSON or YAML) or the request
body of an OpenAPI operation into a validated form. Forms can be rendered as
Bulma HTML, filled in interactively from the terminal or served over HTTP.

Every flag can also be set in a config file (--config) or through DYNFORM_*
environment variables, e.g. DYNFORM_RENDERER=tui.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			a.setupLogging()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("openapi", "", "OpenAPI document to import instead of a descriptor file")
	flags.String("operation", "", "operation id to import from --openapi")
	flags.String("preset", "", "YAML/JSON preset applied to the document before building the form")

	root.AddCommand(
		newRenderCommand(a),
		newPromptCommand(a),
		newServeCommand(a),
		newCheckCommand(a),
		newOperationsCommand(a),
	)
	return root
}

// initConfig binds the flags of cmd into viper and loads the optional config
// file. Flags win over environment variables, which win over the file.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.config.SetEnvPrefix(envPrefix)
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	if err := a.config.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if a.cfgFile != "" {
		a.config.SetConfigFile(a.cfgFile)
		if err := a.config.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}
	return nil
}

func (a *app) setupLogging() {
	level := slog.LevelInfo
	if a.config.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	if used := a.config.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "file", used)
	}
}
