package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/balance"
	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/runner"
	"github.com/aretw0/balance/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the session manager over HTTP.
type Server struct {
	Manager  *session.Manager
	Streams  *StreamManager
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// MaxInputSize bounds free-text fields; zero uses the sanitizer default.
	MaxInputSize int

	apiVersion string
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMaxInputSize bounds free-text request fields.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.MaxInputSize = n
	}
}

// NewHandler builds the HTTP handler for manager.
// Streams should be the same StreamManager whose Publish is registered as
// the manager's change hook; nil disables /events.
func NewHandler(manager *session.Manager, streams *StreamManager, opts ...Option) (http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Manager:    manager,
		Streams:    streams,
		Gatherer:   prometheus.DefaultGatherer,
		Logger:     logging.NewNop(),
		apiVersion: swagger.Info.Version,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/puzzles", s.ListPuzzles)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.withSessionID(s.GetSession))
			r.Delete("/", s.withSessionID(s.DeleteSession))
			r.Post("/apply", s.withSessionID(s.ApplyOperation))
			r.Post("/undo", s.withSessionID(s.UndoStep))
			r.Post("/reset", s.withSessionID(s.ResetSession))
			r.Get("/hint", s.withSessionID(s.GetHint))
		})
	})
	r.Get("/events", s.SubscribeEvents)
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sessionID string)

// withSessionID binds the {sessionId} path parameter.
func (s *Server) withSessionID(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		err := runtime.BindStyledParameterWithOptions("simple", "sessionId", chi.URLParam(r, "sessionId"), &sessionID,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid_parameter", fmt.Sprintf("Invalid format for parameter sessionId: %v", err))
			return
		}
		next(w, r, sessionID)
	}
}

// -- Responses --

// SessionResponse is the body returned by every session endpoint.
type SessionResponse struct {
	State      *domain.State      `json:"state"`
	Formatted  string             `json:"formatted"`
	Solved     bool               `json:"solved"`
	Solution   *int               `json:"solution,omitempty"`
	Message    string             `json:"message"`
	Operations []domain.Operation `json:"operations"`
}

// PuzzleResponse is a catalog entry with its rendered equation.
type PuzzleResponse struct {
	domain.Puzzle
	Formatted string `json:"formatted"`
}

// ErrorResponse carries a stable kind and a learner-facing message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StartRequest is the body of POST /sessions.
type StartRequest struct {
	SessionID string `json:"session_id,omitempty"`
	PuzzleID  string `json:"puzzle_id"`
}

// ApplyRequest is the body of POST /sessions/{id}/apply.
type ApplyRequest struct {
	Operation string `json:"operation"`
	// Magnitude stays raw; domain.ParseMagnitude classifies fractions and negatives.
	Magnitude json.Number `json:"magnitude"`
}

func newSessionResponse(state *domain.State) SessionResponse {
	resp := SessionResponse{
		State:      state,
		Formatted:  domain.FormatEquation(state.Equation),
		Solved:     state.Equation.IsSolved(),
		Message:    state.Message,
		Operations: domain.OperationsFor(state.Equation.Variant),
	}
	if x, ok := state.Equation.SolutionValue(); ok {
		resp.Solution = &x
	}
	return resp
}

// -- Handlers --

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "balance-http",
		"version":     balance.Version(),
		"api_version": s.apiVersion,
	})
}

// ListPuzzles handles GET /puzzles.
func (s *Server) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.Manager.Catalog().List(r.Context())
	if err != nil {
		s.fail(w, "list puzzles", err)
		return
	}
	resp := make([]PuzzleResponse, len(puzzles))
	for i, p := range puzzles {
		resp[i] = PuzzleResponse{Puzzle: p, Formatted: domain.FormatEquation(p.Equation())}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Manager.List(r.Context())
	if err != nil {
		s.fail(w, "list sessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		s.Logger.Warn("start session: invalid request body", "err", err)
		return
	}
	if strings.TrimSpace(body.PuzzleID) == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "puzzle_id is required")
		return
	}

	state, err := s.Manager.Start(r.Context(), body.SessionID, body.PuzzleID)
	if err != nil {
		s.fail(w, "start session", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newSessionResponse(state))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := s.Manager.Load(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "load session", err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(state))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.Manager.Delete(r.Context(), sessionID); err != nil {
		s.fail(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyOperation handles POST /sessions/{id}/apply.
func (s *Server) ApplyOperation(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		s.Logger.Warn("apply: invalid request body", "err", err)
		return
	}
	if body.Magnitude == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "magnitude is required")
		return
	}

	text, err := runner.SanitizeInputWithLimit(body.Operation, s.MaxInputSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", fmt.Sprintf("Invalid input: %v", err))
		s.Logger.Warn("apply: input rejected", "err", err, "size", len(body.Operation))
		return
	}
	op, err := domain.ParseOperation(text)
	if err != nil {
		s.fail(w, "apply", err)
		return
	}

	k, err := domain.ParseMagnitude(body.Magnitude.String())
	if err != nil {
		s.fail(w, "apply", err)
		return
	}

	state, err := s.Manager.Apply(r.Context(), sessionID, op, k)
	if err != nil {
		s.fail(w, "apply", err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(state))
}

// UndoStep handles POST /sessions/{id}/undo.
func (s *Server) UndoStep(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := s.Manager.Undo(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "undo", err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(state))
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := s.Manager.Reset(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "reset", err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(state))
}

// GetHint handles GET /sessions/{id}/hint.
func (s *Server) GetHint(w http.ResponseWriter, r *http.Request, sessionID string) {
	hint, err := s.Manager.Hint(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "hint", err)
		return
	}
	s.writeJSON(w, http.StatusOK, hint)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.Streams == nil {
		s.writeError(w, http.StatusNotImplemented, "streaming_disabled", "Event streaming is not enabled")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "internal", "Streaming not supported")
		return
	}

	var sessionID string
	if err := runtime.BindQueryParameter("form", true, true, "session_id", r.URL.Query(), &sessionID); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_parameter", fmt.Sprintf("Invalid format for parameter session_id: %v", err))
		return
	}
	var watch *string
	if err := runtime.BindQueryParameter("form", true, false, "watch", r.URL.Query(), &watch); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_parameter", fmt.Sprintf("Invalid format for parameter watch: %v", err))
		return
	}
	var watchList []string
	if watch != nil {
		for _, field := range strings.Split(*watch, ",") {
			if field = strings.TrimSpace(field); field != "" {
				watchList = append(watchList, field)
			}
		}
	}

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()
	s.Logger.Info("sse client subscribed", "session_id", sessionID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("sse client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 && !matchesWatch(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// matchesWatch reports whether a serialized diff touches any watched field.
func matchesWatch(msg string, watchList []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	if diff.IsEmpty() {
		// Deletion notices always pass.
		return true
	}
	for _, field := range watchList {
		switch field {
		case "equation":
			if diff.Equation != nil {
				return true
			}
		case "history":
			if diff.History != nil {
				return true
			}
		case "message":
			if diff.Message != nil {
				return true
			}
		case "solved":
			if diff.Solved != nil {
				return true
			}
		case "puzzle":
			if diff.PuzzleID != nil {
				return true
			}
		}
	}
	return false
}

// -- Helpers --

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	var opErr *domain.OperationError
	switch {
	case errors.As(err, &opErr):
		return http.StatusUnprocessableEntity, opErr.KindName()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, domain.ErrPuzzleNotFound):
		return http.StatusNotFound, "puzzle_not_found"
	case errors.Is(err, domain.ErrNoPuzzleLoaded):
		return http.StatusConflict, "no_puzzle_loaded"
	case errors.Is(err, domain.ErrUnknownOperation):
		return http.StatusBadRequest, "unknown_operation"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	status, kind := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(action+" failed", "err", err)
	} else {
		s.Logger.Debug(action+" refused", "kind", kind, "err", err)
	}
	s.writeError(w, status, kind, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, kind, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
