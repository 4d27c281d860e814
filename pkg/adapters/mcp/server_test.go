package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(session.NewManager(memory.NewStore()))
}

func TestServer_LoadApplyUndoHint(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	res, err := s.handleLoadPuzzle(ctx, req, map[string]any{"puzzle_id": "L05-2", "session_id": "agent"})
	require.NoError(t, err)
	assert.Equal(t, "agent", res.SessionID)
	assert.Equal(t, "3x + 1 = x + 9", res.Equation)
	assert.Equal(t, domain.OpSubtractX, res.Operations[0])
	assert.Empty(t, res.Steps)

	hint, err := s.handleHint(ctx, req, map[string]any{"session_id": "agent"})
	require.NoError(t, err)
	assert.Equal(t, domain.OpSubtractX, hint.Operation)
	assert.Equal(t, 1, hint.Magnitude)

	res, err = s.handleApply(ctx, req, map[string]any{"session_id": "agent", "operation": "-x", "magnitude": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, "2x + 1 = 9", res.Equation)

	res, err = s.handleApply(ctx, req, map[string]any{"session_id": "agent", "operation": "subtract", "magnitude": "1"})
	require.NoError(t, err)
	res, err = s.handleApply(ctx, req, map[string]any{"session_id": "agent", "operation": "÷", "magnitude": float64(2)})
	require.NoError(t, err)
	assert.True(t, res.Solved)
	require.NotNil(t, res.Solution)
	assert.Equal(t, 4, *res.Solution)
	require.Len(t, res.Steps, 3)
	assert.Contains(t, res.Steps[0], "3x + 1 = x + 9")

	res, err = s.handleUndo(ctx, req, map[string]any{"session_id": "agent"})
	require.NoError(t, err)
	assert.Equal(t, "2x = 8", res.Equation)
	assert.Len(t, res.Steps, 2)
}

func TestServer_NewSessionID(t *testing.T) {
	s := newTestServer()
	res, err := s.handleLoadPuzzle(context.Background(), mcp.CallToolRequest{}, map[string]any{"puzzle_id": "L01-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, "x + 3 = 7", res.Equation)
}

func TestServer_ApplyErrors(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	_, err := s.handleLoadPuzzle(ctx, req, map[string]any{"puzzle_id": "L03-1", "session_id": "s1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		args map[string]any
		kind error
		msg  string
	}{
		{"fraction", map[string]any{"session_id": "s1", "operation": "divide", "magnitude": 1.5}, domain.ErrInvalidMagnitude, "whole number"},
		{"non integral", map[string]any{"session_id": "s1", "operation": "divide", "magnitude": float64(3)}, domain.ErrNonIntegralResult, "fractions"},
		{"zero divisor", map[string]any{"session_id": "s1", "operation": "divide", "magnitude": float64(0)}, domain.ErrDivisionByZero, "divide by 0"},
		{"unknown op", map[string]any{"session_id": "s1", "operation": "fly", "magnitude": float64(1)}, domain.ErrUnknownOperation, "unknown operation"},
		{"unknown session", map[string]any{"session_id": "nope", "operation": "add", "magnitude": float64(1)}, domain.ErrSessionNotFound, "session not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleApply(ctx, req, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err = s.handleApply(ctx, req, map[string]any{"operation": "add", "magnitude": float64(1)})
	assert.EqualError(t, err, "session_id is required")
	_, err = s.handleApply(ctx, req, map[string]any{"session_id": "s1", "operation": "add"})
	assert.EqualError(t, err, "magnitude is required")
}

func TestServer_Solve(t *testing.T) {
	s := newTestServer()
	res, err := s.handleSolve(context.Background(), mcp.CallToolRequest{}, map[string]any{"puzzle_id": "L04-1"})
	require.NoError(t, err)
	assert.Equal(t, "3x + 2 = 14", res.Start)
	assert.Equal(t, "x = 4", res.Final)
	require.NotNil(t, res.Solution)
	assert.Equal(t, 4, *res.Solution)
	assert.Len(t, res.Steps, 2)
	assert.Contains(t, res.LaTeX, `\begin{aligned}`)

	_, err = s.handleSolve(context.Background(), mcp.CallToolRequest{}, map[string]any{"puzzle_id": "Z9"})
	assert.ErrorIs(t, err, domain.ErrPuzzleNotFound)
}

func TestServer_PuzzleListing(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	result, err := s.handleListPuzzles(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var entries []puzzleEntry
	require.NoError(t, json.Unmarshal([]byte(text.Text), &entries))
	require.Len(t, entries, 6)
	assert.Equal(t, "L01-1", entries[0].ID)
	assert.Equal(t, "x + 3 = 7", entries[0].Formatted)

	contents, err := s.handlePuzzlesResource(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	resource, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, PuzzlesURI, resource.URI)
	assert.JSONEq(t, text.Text, resource.Text)
}

func TestParseMagnitude(t *testing.T) {
	k, err := parseMagnitude(float64(7))
	require.NoError(t, err)
	assert.Equal(t, 7, k)

	k, err = parseMagnitude("12")
	require.NoError(t, err)
	assert.Equal(t, 12, k)

	_, err = parseMagnitude(float64(-2))
	assert.ErrorIs(t, err, domain.ErrInvalidMagnitude)

	_, err = parseMagnitude(true)
	assert.Error(t, err)
}
