package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "÷ 3", "÷ 3"},
		{"Safe Controls", "undo\n\thint", "undo\n\thint"},
		{"ANSI Code", "\x1b[31m+ 3\x1b[0m", "[31m+ 3[0m"},
		{"Null Byte", "+\x00 3", "+ 3"},
		{"Bell", "hint\x07", "hint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("12345678901")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = SanitizeInput("12345")
	assert.NoError(t, err)
}

func TestSanitizeInputWithLimit_ExplicitWins(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "100")

	_, err := SanitizeInputWithLimit("123456", 5)
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
