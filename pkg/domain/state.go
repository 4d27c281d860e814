package domain

import "time"

// HistoryStep records one applied operation.
type HistoryStep struct {
	Operation Operation `json:"operation"`
	Magnitude int       `json:"magnitude"`
	Before    Equation  `json:"before"`
	After     Equation  `json:"after"`
}

// State represents the current snapshot of a solving session.
type State struct {
	// SessionID identifies the session this state belongs to.
	SessionID string `json:"session_id"`

	// PuzzleID is the template the equation was loaded from.
	PuzzleID string `json:"puzzle_id"`

	// Equation is the current equation.
	Equation Equation `json:"equation"`

	// History holds applied steps, most recent first.
	History []HistoryStep `json:"history"`

	// Message is the latest guidance text for the learner.
	Message string `json:"message"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates a clean state for a session.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		History:   []HistoryStep{},
	}
}

// Loaded reports whether a puzzle has been loaded into the state.
func (s *State) Loaded() bool {
	return s.Equation.Variant != ""
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.History = make([]HistoryStep, len(s.History))
	copy(cp.History, s.History)
	return &cp
}
