package domain

import "testing"

func TestEquation_IsSolved(t *testing.T) {
	tests := []struct {
		name     string
		eq       Equation
		solved   bool
		solution int
	}{
		{"single bare x", SingleSided(1, 0, 4), true, 4},
		{"single negative answer", SingleSided(1, 0, -3), true, -3},
		{"single with constant", SingleSided(1, 3, 7), false, 0},
		{"single coefficient", SingleSided(4, 0, 20), false, 0},
		{"single negative x", SingleSided(-1, 0, 5), false, 0},
		{"two sided left", TwoSided(Expression{A: 1}, Expression{B: 2}), true, 2},
		{"two sided right", TwoSided(Expression{B: 2}, Expression{A: 1}), true, 2},
		{"two sided both x", TwoSided(Expression{A: 1}, Expression{A: 1, B: 2}), false, 0},
		{"two sided no x", TwoSided(Expression{B: 2}, Expression{B: 2}), false, 0},
		{"untagged", Equation{Left: Expression{A: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eq.IsSolved(); got != tt.solved {
				t.Errorf("IsSolved() = %v, want %v", got, tt.solved)
			}
			x, ok := tt.eq.SolutionValue()
			if ok != tt.solved || x != tt.solution {
				t.Errorf("SolutionValue() = (%d, %v), want (%d, %v)", x, ok, tt.solution, tt.solved)
			}
			if ok && !tt.eq.Holds(x) {
				t.Errorf("solution %d does not satisfy %s", x, tt.eq)
			}
		})
	}
}

func TestEquation_Validate(t *testing.T) {
	if err := SingleSided(3, 2, 14).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := TwoSided(Expression{A: 1, B: 3}, Expression{A: 2, B: 1}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := SingleSided(1, 0, 4)
	bad.Right.A = 2
	if err := bad.Validate(); err == nil {
		t.Error("expected error for x on the right of a single-sided equation")
	}
	if err := (Equation{Variant: "cubic"}).Validate(); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestPuzzle(t *testing.T) {
	single := Puzzle{ID: "L04-1", A: 3, B: 2, C: 14}
	if single.Variant() != VariantSingleSided {
		t.Errorf("Variant() = %s", single.Variant())
	}
	if got := single.Title(); got != "3x + 2 = 14" {
		t.Errorf("Title() = %q", got)
	}

	two := Puzzle{ID: "L05-1", Label: "Bags on both sides", A: 1, B: 3, Right: &Expression{A: 2, B: 1}}
	if two.Variant() != VariantTwoSided {
		t.Errorf("Variant() = %s", two.Variant())
	}
	if got := two.Equation().String(); got != "x + 3 = 2x + 1" {
		t.Errorf("Equation() = %q", got)
	}
	if got := two.Title(); got != "Bags on both sides" {
		t.Errorf("Title() = %q", got)
	}

	if err := (Puzzle{A: 1}).Validate(); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestState_Snapshot(t *testing.T) {
	s := NewState("s1")
	s.Equation = SingleSided(1, 3, 7)
	s.History = append(s.History, HistoryStep{Operation: OpSubtract, Magnitude: 3})

	cp := s.Snapshot()
	cp.History[0].Magnitude = 99
	cp.History = append(cp.History, HistoryStep{})

	if s.History[0].Magnitude != 3 || len(s.History) != 1 {
		t.Errorf("snapshot shares history with the original: %+v", s.History)
	}
	if !s.Loaded() || NewState("x").Loaded() {
		t.Error("Loaded() should follow the equation variant")
	}
	var nilState *State
	if nilState.Snapshot() != nil {
		t.Error("nil snapshot should be nil")
	}
}
