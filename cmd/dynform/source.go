package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
)

var errNoSource = errors.New("a descriptor file argument or --openapi with --operation is required")

// source picks the document source from the positional argument or the
// --openapi/--operation pair.
func (a *app) source(args []string) (orchestrator.Source, error) {
	if spec := a.config.GetString("openapi"); spec != "" {
		operation := a.config.GetString("operation")
		if operation == "" {
			return nil, fmt.Errorf("--operation is required with --openapi")
		}
		data, err := os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		importer := openapi.NewImporter(openapi.WithLogger(a.logger))
		return orchestrator.OpenAPISource(data, operation, importer), nil
	}
	if len(args) == 0 {
		return nil, errNoSource
	}
	return orchestrator.FileSource(args[0]), nil
}

// orchestrator builds the pipeline shared by render, prompt and serve.
func (a *app) orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{orchestrator.WithLogger(a.logger)}
	if path := a.config.GetString("preset"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformers(preset))
	}
	return orchestrator.New(append(options, extra...)...), nil
}
