package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to the output writer so colour is only emitted when it
// is a terminal.
type styles struct {
	banner  lipgloss.Style
	heading lipgloss.Style
	index   lipgloss.Style
	model   lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")), // cyan
		heading: r.NewStyle().Bold(true),
		index:   r.NewStyle().Foreground(lipgloss.Color("4")), // blue
		model:   r.NewStyle().Foreground(lipgloss.Color("5")), // magenta
		failure: r.NewStyle().Foreground(lipgloss.Color("1")), // red
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")), // gray
	}
}
