package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPuzzleLoaded      EventType = "puzzle_loaded"
	EventOperationApplied  EventType = "operation_applied"
	EventOperationRejected EventType = "operation_rejected"
	EventUndo              EventType = "undo"
	EventSolved            EventType = "solved"
	EventHint              EventType = "hint"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// PuzzleEvent is emitted when a puzzle is (re)loaded into a session.
type PuzzleEvent struct {
	EventBase
	PuzzleID string  `json:"puzzle_id"`
	Variant  Variant `json:"variant"`
}

// OperationEvent is emitted for every apply attempt and for undo.
type OperationEvent struct {
	EventBase
	Operation Operation `json:"operation,omitempty"`
	Magnitude int       `json:"magnitude,omitempty"`
	Before    Equation  `json:"before"`
	After     Equation  `json:"after"`
	Err       error     `json:"-"`
}

// SolvedEvent is emitted when an applied step leaves the equation solved.
type SolvedEvent struct {
	EventBase
	PuzzleID string `json:"puzzle_id"`
	Solution int    `json:"solution"`
	Steps    int    `json:"steps"`
}

// HintEvent is emitted whenever a hint is requested.
type HintEvent struct {
	EventBase
	Hint Hint `json:"hint"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnPuzzleLoaded func(context.Context, *PuzzleEvent)
	OnApply        func(context.Context, *OperationEvent)
	OnReject       func(context.Context, *OperationEvent)
	OnUndo         func(context.Context, *OperationEvent)
	OnSolved       func(context.Context, *SolvedEvent)
	OnHint         func(context.Context, *HintEvent)
}
