package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/openapi"
)

func newOperationsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the OpenAPI operations that can be turned into forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := a.config.GetString("openapi")
			if spec == "" {
				return errors.New("--openapi is required")
			}
			data, err := os.ReadFile(spec)
			if err != nil {
				return fmt.Errorf("read openapi document: %w", err)
			}
			ops, err := openapi.NewImporter(openapi.WithLogger(a.logger)).Operations(cmd.Context(), data)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OPERATION\tMETHOD\tPATH\tSUMMARY")
			for _, op := range ops {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
			}
			return tw.Flush()
		},
	}
}
