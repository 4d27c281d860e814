package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB. A REPL command is a few bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "BALANCE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput applies SanitizeInputWithLimit with the environment or default limit.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputWithLimit(input, 0)
}

// SanitizeInputWithLimit cleans user input by enforcing a size limit,
// validating UTF-8, and stripping control characters other than
// newline, tab and carriage return. A limit <= 0 falls back to
// BALANCE_MAX_INPUT_SIZE, then DefaultMaxInputSize.
func SanitizeInputWithLimit(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = getMaxInputSize()
	}
	// Reject rather than truncate: a truncated "÷ 12" would become "÷ 1".
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
