package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Styler colours REPL output. A plain Styler writes text unchanged.
type Styler struct {
	out   *termenv.Output
	plain bool
}

// NewStyler detects the colour profile of w.
func NewStyler(w io.Writer, plain bool) *Styler {
	return &Styler{out: termenv.NewOutput(w), plain: plain}
}

// Equation highlights the current equation.
func (s *Styler) Equation(text string) string {
	if s.plain {
		return text
	}
	return s.out.String(text).Bold().String()
}

// Solved highlights the solved message.
func (s *Styler) Solved(text string) string {
	if s.plain {
		return text
	}
	return s.out.String(text).Foreground(s.out.Color("#34d399")).Bold().String()
}

// Error colours a rejection reason.
func (s *Styler) Error(text string) string {
	if s.plain {
		return text
	}
	return s.out.String(text).Foreground(s.out.Color("#f87171")).String()
}

// Faint dims secondary text such as the scale.
func (s *Styler) Faint(text string) string {
	if s.plain {
		return text
	}
	return s.out.String(text).Faint().String()
}
