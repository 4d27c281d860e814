package runner

import (
	"testing"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		last domain.Operation
		want Command
	}{
		{"empty", "   ", "", Command{Kind: CmdNoop}},
		{"quit", "quit", "", Command{Kind: CmdQuit}},
		{"exit alias", "exit", "", Command{Kind: CmdQuit}},
		{"undo", "undo", "", Command{Kind: CmdUndo}},
		{"hint short", "h", "", Command{Kind: CmdHint}},
		{"load", "puzzle L05-1", "", Command{Kind: CmdLoad, Arg: "L05-1"}},
		{"symbol and magnitude", "+ 3", "", Command{Kind: CmdApply, Operation: domain.OpAdd, Magnitude: 3, MagnitudeText: "3"}},
		{"name and magnitude", "divide 4", "", Command{Kind: CmdApply, Operation: domain.OpDivide, Magnitude: 4, MagnitudeText: "4"}},
		{"subtract x", "-x 1", "", Command{Kind: CmdApply, Operation: domain.OpSubtractX, Magnitude: 1, MagnitudeText: "1"}},
		{"glued", "÷2", "", Command{Kind: CmdApply, Operation: domain.OpDivide, Magnitude: 2, MagnitudeText: "2"}},
		{"glued subtract x", "-x2", "", Command{Kind: CmdApply, Operation: domain.OpSubtractX, Magnitude: 2, MagnitudeText: "2"}},
		{"glued minus", "-3", "", Command{Kind: CmdApply, Operation: domain.OpSubtract, Magnitude: 3, MagnitudeText: "3"}},
		{"bare magnitude reuses last", "5", domain.OpMultiply, Command{Kind: CmdApply, Operation: domain.OpMultiply, Magnitude: 5, MagnitudeText: "5"}},
		{"select only", "×", "", Command{Kind: CmdSelect, Operation: domain.OpMultiply}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand("7", "")
	assert.ErrorIs(t, err, ErrNoOperationSelected)

	_, err = ParseCommand("jump 3", "")
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)

	_, err = ParseCommand("banana", "")
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)

	_, err = ParseCommand("puzzle", "")
	assert.ErrorContains(t, err, "usage")

	cmd, err := ParseCommand("÷ 1.5", "")
	assert.ErrorIs(t, err, domain.ErrInvalidMagnitude)
	assert.Equal(t, domain.OpDivide, cmd.Operation, "the operation is still remembered")
	assert.Equal(t, "Please enter a whole number, no decimals or fractions.", err.Error())

	_, err = ParseCommand("+ abc", "")
	assert.Equal(t, "Please enter a number.", err.Error())

	_, err = ParseCommand("+ -2", "")
	assert.Equal(t, "Use the subtract operation instead of a negative number.", err.Error())
}
