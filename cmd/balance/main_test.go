package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "balance version 0.1.0\n", out)
}

func TestPuzzlesCommand(t *testing.T) {
	out, err := execute(t, "", "puzzles", "--json")
	require.NoError(t, err)

	var puzzles []domain.Puzzle
	require.NoError(t, json.Unmarshal([]byte(out), &puzzles))
	require.Len(t, puzzles, 6)
	assert.Equal(t, "L01-1", puzzles[0].ID)
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "", "solve", "L04-1")
	require.NoError(t, err)
	assert.Contains(t, out, "    3x + 2 = 14\n")
	assert.Contains(t, out, " 1. both sides - 2\n    3x = 12\n")
	assert.Contains(t, out, " 2. both sides ÷ 3\n    x = 4\n")
	assert.Contains(t, out, "Check: x = 4 gives 14 = 14 ✓")

	_, err = execute(t, "", "solve", "Z9")
	assert.ErrorIs(t, err, domain.ErrPuzzleNotFound)
}

func TestPlayCommand(t *testing.T) {
	out, err := execute(t, "- 3\nquit\n", "play", "--plain", "L01-1")
	require.NoError(t, err)
	assert.Contains(t, out, "x + 3 = 7")
	assert.Contains(t, out, "Solved: x = 4")
}

func TestSessionCommandNeedsRedis(t *testing.T) {
	_, err := execute(t, "", "session", "ls")
	assert.ErrorIs(t, err, errNoSharedStore)
}

func TestCheckLine(t *testing.T) {
	eq := domain.TwoSided(domain.Expression{A: 3, B: 1}, domain.Expression{A: 1, B: 9})
	assert.Equal(t, "x = 4 gives 13 = 13 ✓", checkLine(eq, 4))
	assert.Equal(t, "x = 5 gives 16 = 14 ✗", checkLine(eq, 5))
}

// Runs last: cobra keeps flag values between executions.
func TestSolveCommand_LaTeX(t *testing.T) {
	out, err := execute(t, "", "solve", "--latex", "L03-1")
	require.NoError(t, err)
	assert.Contains(t, out, `\begin{aligned}`)
	assert.Contains(t, out, `4x &= 20 && \text{both sides } \div 4`)
}
