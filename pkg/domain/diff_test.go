package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	start := &State{
		SessionID: "sess-1",
		PuzzleID:  "L04-1",
		Equation:  SingleSided(3, 2, 14),
		History:   []HistoryStep{},
		Message:   "Goal",
	}
	step := HistoryStep{Operation: OpSubtract, Magnitude: 2, Before: start.Equation, After: SingleSided(3, 0, 12)}
	applied := &State{
		SessionID: "sess-1",
		PuzzleID:  "L04-1",
		Equation:  step.After,
		History:   []HistoryStep{step},
		Message:   "Nice",
	}
	solvedStep := HistoryStep{Operation: OpDivide, Magnitude: 3, Before: step.After, After: SingleSided(1, 0, 4)}
	solved := &State{
		SessionID: "sess-1",
		PuzzleID:  "L04-1",
		Equation:  solvedStep.After,
		History:   []HistoryStep{solvedStep, step},
		Message:   "Nice",
	}

	puzzleID := "L04-1"
	f0, f1 := "3x + 2 = 14", "3x = 12"
	no, yes := false, true
	goal, nice := "Goal", "Nice"
	eq0, eq1 := start.Equation, applied.Equation

	tests := []struct {
		name string
		old  *State
		new  *State
		want *StateDiff
	}{
		{
			name: "initial load",
			old:  nil,
			new:  start,
			want: &StateDiff{
				SessionID: "sess-1",
				PuzzleID:  &puzzleID,
				Equation:  &eq0,
				Formatted: &f0,
				Solved:    &no,
				Message:   &goal,
			},
		},
		{
			name: "no changes",
			old:  start,
			new:  start.Snapshot(),
			want: nil,
		},
		{
			name: "step applied",
			old:  start,
			new:  applied,
			want: &StateDiff{
				SessionID: "sess-1",
				Equation:  &eq1,
				Formatted: &f1,
				Message:   &nice,
				History:   &HistoryDelta{Pushed: []HistoryStep{step}},
			},
		},
		{
			name: "undo",
			old:  applied,
			new:  &State{SessionID: "sess-1", PuzzleID: "L04-1", Equation: eq0, History: []HistoryStep{}, Message: "Nice"},
			want: &StateDiff{
				SessionID: "sess-1",
				Equation:  &eq0,
				Formatted: &f0,
				History:   &HistoryDelta{Popped: 1},
			},
		},
		{
			name: "nil new state",
			old:  start,
			new:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.want) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.want)
				t.Errorf("Diff() =\n%s\nwant\n%s", gotJSON, wantJSON)
			}
		})
	}

	t.Run("solved flips", func(t *testing.T) {
		got := Diff(applied, solved)
		if got == nil || got.Solved == nil || *got.Solved != yes {
			t.Fatalf("expected solved=true in diff, got %+v", got)
		}
		if got.History == nil || len(got.History.Pushed) != 1 || got.History.Pushed[0] != solvedStep {
			t.Errorf("expected one pushed step, got %+v", got.History)
		}
		if got.Message != nil {
			t.Errorf("message did not change, got %q", *got.Message)
		}
	})
}
