package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformedInput is returned for input lines the handler cannot interpret.
// The runner reports it and keeps reading.
var ErrMalformedInput = errors.New("malformed input")

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Each view is one JSON object per line. Input lines are either plain
// commands ("÷ 4") or objects such as {"operation": "divide", "magnitude": 4}
// or {"command": "undo"}.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

// Output emits the view as a single JSON line.
func (h *JSONHandler) Output(ctx context.Context, view View) error {
	return h.Encoder.Encode(view)
}

type jsonInput struct {
	Command   string `json:"command"`
	Operation string `json:"operation"`
	Magnitude *int   `json:"magnitude"`
}

// Input reads one line and converts structured requests to command text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") {
		return line, nil
	}

	var in jsonInput
	if err := json.Unmarshal([]byte(line), &in); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	switch {
	case in.Command != "":
		return in.Command, nil
	case in.Operation != "" && in.Magnitude != nil:
		return fmt.Sprintf("%s %d", in.Operation, *in.Magnitude), nil
	case in.Operation != "":
		return in.Operation, nil
	default:
		return "", fmt.Errorf("%w: json input needs \"command\" or \"operation\"", ErrMalformedInput)
	}
}
