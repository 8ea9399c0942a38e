package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWrapWidth = 100

// renderResponse returns the response text for display. Without -markdown it
// is returned untouched.
func (a *app) renderResponse(text string) string {
	if !a.markdown {
		return text
	}
	return renderMarkdown(text, a.width)
}

// renderMarkdown converts markdown to terminal output, falling back to the
// raw text if rendering fails.
func renderMarkdown(text string, width int) string {
	if width <= 0 {
		width = defaultWrapWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(out, "\n")
}
