package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type fieldReport struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
	Rules    int    `json:"rules"`
}

type checkReport struct {
	Name   string        `json:"name"`
	Valid  bool          `json:"valid"`
	Fields []fieldReport `json:"fields"`
	Slots  []string      `json:"slots,omitempty"`
}

func newCheckCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [descriptors.yaml]",
		Short: "Validate a descriptor document and list its fields",
		Long: `Parse and resolve a descriptor document without rendering it. Malformed
descriptors and duplicate field identifiers fail the command; otherwise
the resolved inputs are listed with their kind and rule count.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args)
		},
	}
	cmd.Flags().String("format", "table", "output format: table, json")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	format := a.config.GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid: table, json)", format)
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

	view := f.View()
	report := checkReport{Name: view.Name, Valid: view.Valid, Slots: view.Slots()}
	for _, field := range f.Fields() {
		if !field.IsInput() {
			continue
		}
		report.Fields = append(report.Fields, fieldReport{
			ID:       field.ID,
			Label:    field.Label,
			Kind:     string(field.Kind),
			Required: field.Required,
			Rules:    len(field.Validations),
		})
	}
	a.logger.Debug("document checked", "form", report.Name, "inputs", len(report.Fields))

	if format == "json" {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "form\t%s\n", report.Name)
	fmt.Fprintf(tw, "initially valid\t%t\n\n", report.Valid)
	fmt.Fprintln(tw, "ID\tLABEL\tKIND\tREQUIRED\tRULES")
	for _, field := range report.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\n", field.ID, field.Label, field.Kind, field.Required, field.Rules)
	}
	return tw.Flush()
}
