// Package main provides the dynform CLI: render, prompt, serve and check
// forms described by descriptor documents or OpenAPI operations.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
