package balance

import (
	"context"
	"errors"

	"github.com/aretw0/balance/internal/runtime"
	"github.com/aretw0/balance/pkg/domain"
)

// Session holds one learner's equation and history.
// It is owned by a single front end and is not safe for concurrent use.
type Session struct {
	engine *runtime.Engine
	id     string
	puzzle domain.Puzzle
	state  *domain.State
}

// NewSession returns an empty session backed by a default engine.
// Call LoadPuzzle before anything else.
func NewSession(id string) *Session {
	return &Session{engine: runtime.NewEngine(), id: id}
}

// LoadPuzzle replaces the equation with the puzzle's and clears history.
func (s *Session) LoadPuzzle(puzzle domain.Puzzle) error {
	state, err := s.engine.Start(context.Background(), s.id, puzzle)
	if err != nil {
		return err
	}
	s.puzzle = puzzle
	s.state = state
	return nil
}

// Reset reloads the current puzzle.
func (s *Session) Reset() error {
	if s.state == nil {
		return domain.ErrNoPuzzleLoaded
	}
	return s.LoadPuzzle(s.puzzle)
}

// Apply applies op with magnitude k to both sides and returns the new equation.
// On failure the equation and history are unchanged, the message is set to the
// error's reason and the *domain.OperationError is returned.
func (s *Session) Apply(op domain.Operation, k int) (domain.Equation, error) {
	next, err := s.engine.Apply(context.Background(), s.state, op, k)
	if err != nil {
		var opErr *domain.OperationError
		if errors.As(err, &opErr) {
			s.state.Message = opErr.Reason
		}
		return s.Equation(), err
	}
	s.state = next
	return s.state.Equation, nil
}

// Undo reverts the most recent step. It is a no-op on empty history.
func (s *Session) Undo() domain.Equation {
	if next, err := s.engine.Undo(context.Background(), s.state); err == nil {
		s.state = next
	}
	return s.Equation()
}

// Hint returns the structured next-step advice.
func (s *Session) Hint() domain.Hint {
	hint, err := s.engine.Suggest(context.Background(), s.state)
	if err != nil {
		return domain.Hint{Kind: domain.HintKeepIsolating, Message: err.Error()}
	}
	return hint
}

// SuggestNextStep returns the hint as display text.
func (s *Session) SuggestNextStep() string {
	return s.Hint().Message
}

// Equation returns the current equation, or the zero value before a puzzle is loaded.
func (s *Session) Equation() domain.Equation {
	if s.state == nil {
		return domain.Equation{}
	}
	return s.state.Equation
}

// IsSolved reports whether x stands alone.
func (s *Session) IsSolved() bool {
	return s.state != nil && s.state.Equation.IsSolved()
}

// SolutionValue returns x once solved.
func (s *Session) SolutionValue() (int, bool) {
	return s.Equation().SolutionValue()
}

// Format renders the current equation.
func (s *Session) Format() string {
	if s.state == nil {
		return ""
	}
	return domain.FormatEquation(s.state.Equation)
}

// Message returns the latest guidance text.
func (s *Session) Message() string {
	if s.state == nil {
		return ""
	}
	return s.state.Message
}

// History returns the applied steps, most recent first.
func (s *Session) History() []domain.HistoryStep {
	if s.state == nil {
		return nil
	}
	return s.state.Snapshot().History
}

// Puzzle returns the loaded puzzle template.
func (s *Session) Puzzle() domain.Puzzle {
	return s.puzzle
}

// State returns a copy of the session state.
func (s *Session) State() *domain.State {
	return s.state.Snapshot()
}
