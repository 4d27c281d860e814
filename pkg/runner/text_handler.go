package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/balance/internal/presentation/tui"
)

// TextHandler implements the interactive terminal interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer tui.Renderer
	Styler   *tui.Styler
	// ShowScale draws the balance-scale tokens under the equation.
	ShowScale bool

	prompt    string
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the markdown renderer for panels.
func WithTextHandlerRenderer(renderer tui.Renderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerStyler configures colours.
func WithTextHandlerStyler(s *tui.Styler) TextHandlerOption {
	return func(h *TextHandler) {
		h.Styler = s
	}
}

// WithTextHandlerScale toggles the balance-scale drawing.
func WithTextHandlerScale(show bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.ShowScale = show
	}
}

// NewTextHandler creates a handler for standard text IO.
// Without options it writes plain text with no colours.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:    bufio.NewReader(r),
		Writer:    w,
		Renderer:  tui.PlainRenderer,
		Styler:    tui.NewStyler(w, true),
		ShowScale: true,
		prompt:    "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honour ctx.
func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

// Output prints the panel, the equation, the scale and the message.
func (h *TextHandler) Output(ctx context.Context, view View) error {
	var b strings.Builder

	if view.Panel != "" {
		rendered, err := h.Renderer(view.Panel)
		if err != nil {
			rendered = view.Panel
		}
		b.WriteString(strings.TrimRight(rendered, "\n"))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "[%s] %s\n", view.PuzzleID, view.PuzzleTitle)
	fmt.Fprintf(&b, "    %s\n", h.Styler.Equation(view.Formatted))
	if h.ShowScale {
		b.WriteString(h.Styler.Faint(tui.RenderScale(view.Equation)))
	}

	switch {
	case view.IsError:
		b.WriteString(h.Styler.Error(view.Message))
	case view.Solved:
		b.WriteString(h.Styler.Solved(view.Message))
	default:
		b.WriteString(view.Message)
	}
	b.WriteString("\n")

	_, err := io.WriteString(h.Writer, b.String())
	h.prompt = promptFor(view)
	return err
}

func promptFor(view View) string {
	symbols := make([]string, 0, len(view.Operations))
	for _, op := range view.Operations {
		symbols = append(symbols, op.Symbol())
	}
	prompt := "[" + strings.Join(symbols, " ") + "]"
	if view.LastOperation != "" {
		prompt += fmt.Sprintf(" (%s %s)", view.LastOperation.Symbol(), view.LastMagnitude)
	}
	return prompt + " > "
}

// Input prompts and waits for a line or for ctx to finish.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		fmt.Fprint(h.Writer, h.prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}
