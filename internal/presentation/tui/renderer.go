package tui

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal output.
type Renderer func(string) (string, error)

// NewRenderer returns a Renderer backed by glamour.
// It picks a light or dark style from the terminal background.
func NewRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// PlainRenderer returns markdown unchanged, for pipes and tests.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}
