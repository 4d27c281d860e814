package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	PuzzleID *string   `json:"puzzle_id,omitempty"`
	Equation *Equation `json:"equation,omitempty"`

	// Formatted accompanies Equation so thin clients need no formatter.
	Formatted *string `json:"formatted,omitempty"`

	Solved  *bool   `json:"solved,omitempty"`
	Message *string `json:"message,omitempty"`

	History *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta represents changes to the history stack.
// History is most-recent-first, so pushes land at the front.
type HistoryDelta struct {
	Pushed []HistoryStep `json:"pushed,omitempty"`
	Popped int           `json:"popped,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.PuzzleID != newState.PuzzleID {
		diff.PuzzleID = &newState.PuzzleID
	}
	if oldState == nil || oldState.Equation != newState.Equation {
		eq := newState.Equation
		formatted := FormatEquation(eq)
		diff.Equation = &eq
		diff.Formatted = &formatted
	}
	solved := newState.Equation.IsSolved()
	if oldState == nil || oldState.Equation.IsSolved() != solved {
		diff.Solved = &solved
	}
	if oldState == nil || oldState.Message != newState.Message {
		diff.Message = &newState.Message
	}
	diff.History = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffHistory(old *State, new *State) *HistoryDelta {
	if old == nil {
		if len(new.History) == 0 {
			return nil
		}
		return &HistoryDelta{Pushed: new.History}
	}

	oldLen := len(old.History)
	newLen := len(new.History)

	switch {
	case newLen > oldLen:
		return &HistoryDelta{Pushed: new.History[:newLen-oldLen]}
	case newLen < oldLen:
		return &HistoryDelta{Popped: oldLen - newLen}
	default:
		return nil
	}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.PuzzleID == nil &&
		d.Equation == nil &&
		d.Solved == nil &&
		d.Message == nil &&
		d.History == nil
}
