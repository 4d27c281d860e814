package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/balance"
	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/internal/runtime"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/runner"
	"github.com/aretw0/balance/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// PuzzlesURI is the resource listing the puzzle catalog.
const PuzzlesURI = "balance://puzzles"

// SessionResult is the structured output of every session tool.
type SessionResult struct {
	SessionID  string             `json:"session_id" jsonschema_description:"Session to pass to later calls"`
	PuzzleID   string             `json:"puzzle_id" jsonschema_description:"Puzzle the session was loaded from"`
	Equation   string             `json:"equation" jsonschema_description:"Current equation"`
	Solved     bool               `json:"solved" jsonschema_description:"True once x stands alone"`
	Solution   *int               `json:"solution,omitempty" jsonschema_description:"Value of x when solved"`
	Message    string             `json:"message" jsonschema_description:"Guidance for the learner"`
	Operations []domain.Operation `json:"operations" jsonschema_description:"Operations valid for this equation"`
	Steps      []string           `json:"steps" jsonschema_description:"Applied steps, oldest first"`
}

// SolveResult is the worked solution of a puzzle.
type SolveResult struct {
	PuzzleID string   `json:"puzzle_id"`
	Start    string   `json:"start" jsonschema_description:"Starting equation"`
	Steps    []string `json:"steps" jsonschema_description:"Worked steps, oldest first"`
	Final    string   `json:"final" jsonschema_description:"Final equation"`
	Solution *int     `json:"solution,omitempty"`
	LaTeX    string   `json:"latex" jsonschema_description:"Aligned LaTeX rendering of the working"`
}

// Server exposes a session manager as an MCP server.
type Server struct {
	manager      *session.Manager
	mcpServer    *server.MCPServer
	logger       *slog.Logger
	maxInputSize int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxInputSize bounds free-text tool arguments.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   manager,
		mcpServer: server.NewMCPServer("balance-mcp", balance.Version()),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down mcp server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_puzzles",
		mcp.WithDescription("List the available puzzles in lesson order."),
	), s.handleListPuzzles)

	s.mcpServer.AddTool(mcp.NewTool("load_puzzle",
		mcp.WithDescription("Load a puzzle into a session, clearing its history. Omit session_id to start a new session."),
		mcp.WithString("puzzle_id", mcp.Required(), mcp.Description("Puzzle ID, e.g. L04-1")),
		mcp.WithString("session_id", mcp.Description("Existing session to reuse (optional)")),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleLoadPuzzle))

	s.mcpServer.AddTool(mcp.NewTool("apply_operation",
		mcp.WithDescription("Do the same thing to both sides of the session's equation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("add, subtract, multiply, divide, add_x or subtract_x (symbols such as + or -x also work)")),
		mcp.WithNumber("magnitude", mcp.Required(), mcp.Description("Non-negative whole number")),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleApply))

	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Revert the most recent step."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleUndo))

	s.mcpServer.AddTool(mcp.NewTool("hint",
		mcp.WithDescription("Suggest the next step without changing the session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[domain.Hint](),
	), mcp.NewStructuredToolHandler(s.handleHint))

	s.mcpServer.AddTool(mcp.NewTool("solve",
		mcp.WithDescription("Show the worked solution of a puzzle, one balanced step at a time."),
		mcp.WithString("puzzle_id", mcp.Required(), mcp.Description("Puzzle ID")),
		mcp.WithOutputSchema[SolveResult](),
	), mcp.NewStructuredToolHandler(s.handleSolve))
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PuzzlesURI, "Puzzle Catalog",
		mcp.WithMIMEType("application/json"),
	), s.handlePuzzlesResource)
}

// -- Arguments --

type loadArgs struct {
	PuzzleID  string `mapstructure:"puzzle_id"`
	SessionID string `mapstructure:"session_id"`
}

type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

type applyArgs struct {
	SessionID string `mapstructure:"session_id"`
	Operation string `mapstructure:"operation"`
	Magnitude any    `mapstructure:"magnitude"`
}

func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// parseMagnitude accepts JSON numbers and numeric strings, rejecting fractions.
func parseMagnitude(v any) (int, error) {
	switch m := v.(type) {
	case nil:
		return 0, errors.New("magnitude is required")
	case float64:
		return domain.ParseMagnitude(strconv.FormatFloat(m, 'f', -1, 64))
	case int:
		return domain.ParseMagnitude(strconv.Itoa(m))
	case string:
		return domain.ParseMagnitude(m)
	default:
		return 0, fmt.Errorf("magnitude must be a number, got %T", v)
	}
}

func requireSession(id string) error {
	if id == "" {
		return errors.New("session_id is required")
	}
	return nil
}

// -- Handlers --

func (s *Server) handleListPuzzles(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := s.puzzlesJSON(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list puzzles failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleLoadPuzzle(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (SessionResult, error) {
	var in loadArgs
	if err := decodeArgs(args, &in); err != nil {
		return SessionResult{}, err
	}
	if in.PuzzleID == "" {
		return SessionResult{}, errors.New("puzzle_id is required")
	}
	state, err := s.manager.Start(ctx, in.SessionID, in.PuzzleID)
	if err != nil {
		return SessionResult{}, err
	}
	return newSessionResult(state), nil
}

func (s *Server) handleApply(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (SessionResult, error) {
	var in applyArgs
	if err := decodeArgs(args, &in); err != nil {
		return SessionResult{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return SessionResult{}, err
	}

	text, err := runner.SanitizeInputWithLimit(in.Operation, s.maxInputSize)
	if err != nil {
		s.logger.Warn("mcp apply: input rejected", "err", err, "size", len(in.Operation))
		return SessionResult{}, fmt.Errorf("input rejected: %w", err)
	}
	op, err := domain.ParseOperation(text)
	if err != nil {
		return SessionResult{}, err
	}
	k, err := parseMagnitude(in.Magnitude)
	if err != nil {
		return SessionResult{}, err
	}

	state, err := s.manager.Apply(ctx, in.SessionID, op, k)
	if err != nil {
		return SessionResult{}, err
	}
	return newSessionResult(state), nil
}

func (s *Server) handleUndo(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (SessionResult, error) {
	var in sessionArgs
	if err := decodeArgs(args, &in); err != nil {
		return SessionResult{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return SessionResult{}, err
	}
	state, err := s.manager.Undo(ctx, in.SessionID)
	if err != nil {
		return SessionResult{}, err
	}
	return newSessionResult(state), nil
}

func (s *Server) handleHint(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (domain.Hint, error) {
	var in sessionArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Hint{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return domain.Hint{}, err
	}
	return s.manager.Hint(ctx, in.SessionID)
}

func (s *Server) handleSolve(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (SolveResult, error) {
	var in loadArgs
	if err := decodeArgs(args, &in); err != nil {
		return SolveResult{}, err
	}
	puzzle, err := s.manager.Catalog().Get(ctx, in.PuzzleID)
	if err != nil {
		return SolveResult{}, err
	}

	start := puzzle.Equation()
	steps, err := runtime.Solve(start, 0)
	if err != nil {
		return SolveResult{}, err
	}

	res := SolveResult{
		PuzzleID: puzzle.ID,
		Start:    start.String(),
		Steps:    formatSteps(steps),
		Final:    start.String(),
		LaTeX:    domain.FormatWorkingLaTeX(start, steps),
	}
	if len(steps) > 0 {
		final := steps[len(steps)-1].After
		res.Final = final.String()
		if x, ok := final.SolutionValue(); ok {
			res.Solution = &x
		}
	} else if x, ok := start.SolutionValue(); ok {
		res.Solution = &x
	}
	return res, nil
}

func (s *Server) handlePuzzlesResource(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := s.puzzlesJSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PuzzlesURI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}

// -- Helpers --

type puzzleEntry struct {
	domain.Puzzle
	Formatted string `json:"formatted"`
}

func (s *Server) puzzlesJSON(ctx context.Context) ([]byte, error) {
	puzzles, err := s.manager.Catalog().List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]puzzleEntry, len(puzzles))
	for i, p := range puzzles {
		entries[i] = puzzleEntry{Puzzle: p, Formatted: domain.FormatEquation(p.Equation())}
	}
	return json.Marshal(entries)
}

func newSessionResult(state *domain.State) SessionResult {
	res := SessionResult{
		SessionID:  state.SessionID,
		PuzzleID:   state.PuzzleID,
		Equation:   state.Equation.String(),
		Solved:     state.Equation.IsSolved(),
		Message:    state.Message,
		Operations: domain.OperationsFor(state.Equation.Variant),
		Steps:      make([]string, 0, len(state.History)),
	}
	if x, ok := state.Equation.SolutionValue(); ok {
		res.Solution = &x
	}
	for i := len(state.History) - 1; i >= 0; i-- {
		res.Steps = append(res.Steps, domain.FormatStep(state.History[i]))
	}
	return res
}

func formatSteps(steps []domain.HistoryStep) []string {
	out := make([]string, len(steps))
	for i, step := range steps {
		out[i] = domain.FormatStep(step)
	}
	return out
}
