package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Prompt asks for every input field in order, re-asking until the value
// passes validation, then submits the form and serializes the submission.
// Slot content from options is printed where the slot appears; html
// fragments are skipped.
func (r *Renderer) Prompt(ctx context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	opts := options.WithDefaults()

	for _, field := range f.Fields() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch field.Mode {
		case model.ModeHTML:
			continue
		case model.ModeSlot:
			if content := opts.Slots[field.SlotName]; content != "" {
				if err := r.driver.Info(ctx, r.theme.InfoPrefix+content); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := r.promptField(ctx, f, field, opts); err != nil {
			return nil, err
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.theme.PromptPrefix + opts.Translate("form.submit", opts.SubmitLabel) + " " + f.Name() + "?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	submission, err := f.Submit(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("prompt submitted", "form", f.Name(), "submission", submission.ID)
	return r.serialize(submission)
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, field model.Field, opts render.RenderOptions) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		state, _ := f.State(field.Label)
		value, err := r.ask(ctx, field, state.Value, opts)
		if err != nil {
			return err
		}
		if err := f.SetValue(ctx, field.Label, value); err != nil {
			return err
		}
		if err := f.Touch(ctx, field.Label); err != nil {
			return err
		}

		state, _ = f.State(field.Label)
		if state.Valid {
			return nil
		}
		r.logger.Debug("prompt rejected", "field", field.ID, "rule", state.Rule, "attempt", attempt)
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+state.Message); err != nil {
			return err
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current model.Value, opts render.RenderOptions) (model.Value, error) {
	message := r.theme.PromptPrefix + promptLabel(field, opts)
	help := ""
	if field.Help != "" {
		help = opts.Translate(field.ID+".help", field.Help)
	}

	switch field.Kind {
	case model.KindRadio, model.KindSelect, model.KindCheckbox:
		if len(field.Choices) == 0 {
			if field.Required {
				return current, fmt.Errorf("%w: %s", ErrNoChoices, field.Label)
			}
			return current, nil
		}
	}

	switch field.Kind {
	case model.KindPassword:
		out, err := r.driver.Password(ctx, InputConfig{Message: message, Default: current.String(), Help: help})
		return model.Text(out), err
	case model.KindTextarea:
		out, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current.String(), Help: help})
		return model.Text(out), err
	case model.KindRadio, model.KindSelect:
		options, defaultIdx := choiceOptions(field, current, opts)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return current, err
		}
		if idx < 0 || idx >= len(field.Choices) {
			return model.Text(""), nil
		}
		return model.Text(field.Choices[idx].Value), nil
	case model.KindCheckbox:
		options, _ := choiceOptions(field, current, opts)
		var defaults []int
		for i, choice := range field.Choices {
			if current.Contains(choice.Value) {
				defaults = append(defaults, i)
			}
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  options,
			Defaults: defaults,
			Help:     help,
		})
		if err != nil {
			return current, err
		}
		values := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Choices) {
				values = append(values, field.Choices[idx].Value)
			}
		}
		return model.List(values...), nil
	default:
		out, err := r.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     current.String(),
			Help:        help,
			Placeholder: field.Placeholder,
		})
		return model.Text(out), err
	}
}

func choiceOptions(field model.Field, current model.Value, opts render.RenderOptions) ([]string, int) {
	options := make([]string, 0, len(field.Choices))
	defaultIdx := -1
	for i, choice := range field.Choices {
		options = append(options, opts.Translate(field.ID+"."+choice.Value, choice.Label))
		if defaultIdx < 0 && current.Contains(choice.Value) {
			defaultIdx = i
		}
	}
	return options, defaultIdx
}
