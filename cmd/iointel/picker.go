package main

import (
	"context"

	"github.com/charmbracelet/huh"
)

// pickInteractively asks for the model and the prompt with terminal forms.
// It is only used when stdin and stdout are terminals.
func pickInteractively(ctx context.Context, models []string) (model, prompt string, err error) {
	opts := make([]huh.Option[string], len(models))
	for i, m := range models {
		opts[i] = huh.NewOption(m, m)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Available chat models").
				Options(opts...).
				Height(min(len(models)+2, 15)).
				Value(&model),
		),
		huh.NewGroup(
			huh.NewText().Title("Enter your prompt").Value(&prompt),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return "", "", err
	}

	return model, prompt, nil
}
