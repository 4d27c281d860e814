package domain

import (
	"strings"
	"testing"
)

func TestFormatEquation(t *testing.T) {
	tests := []struct {
		eq   Equation
		want string
	}{
		{SingleSided(1, 3, 7), "x + 3 = 7"},
		{SingleSided(1, -4, 6), "x - 4 = 6"},
		{SingleSided(4, 0, 20), "4x = 20"},
		{SingleSided(-1, 0, 5), "-x = 5"},
		{SingleSided(-3, -2, -8), "-3x - 2 = -8"},
		{SingleSided(0, 7, 7), "7 = 7"},
		{SingleSided(0, 0, 0), "0 = 0"},
		{TwoSided(Expression{A: 1, B: 3}, Expression{A: 2, B: 1}), "x + 3 = 2x + 1"},
		{TwoSided(Expression{A: 2, B: 1}, Expression{B: 9}), "2x + 1 = 9"},
		{TwoSided(Expression{B: 2}, Expression{A: 1}), "2 = x"},
		{TwoSided(Expression{A: 1}, Expression{}), "x = 0"},
	}
	for _, tt := range tests {
		if got := FormatEquation(tt.eq); got != tt.want {
			t.Errorf("FormatEquation(%+v) = %q, want %q", tt.eq, got, tt.want)
		}
		if strings.Contains(FormatEquation(tt.eq), "+ -") {
			t.Errorf("%q contains \"+ -\"", FormatEquation(tt.eq))
		}
	}
}

func TestFormatAction(t *testing.T) {
	tests := []struct {
		op   Operation
		k    int
		want string
	}{
		{OpAdd, 3, "both sides + 3"},
		{OpSubtract, 2, "both sides - 2"},
		{OpMultiply, 2, "both sides × 2"},
		{OpDivide, 4, "both sides ÷ 4"},
		{OpSubtractX, 1, "both sides - 1 bag of x"},
		{OpAddX, 2, "both sides + 2 bags of x"},
	}
	for _, tt := range tests {
		if got := FormatAction(tt.op, tt.k); got != tt.want {
			t.Errorf("FormatAction(%s, %d) = %q, want %q", tt.op, tt.k, got, tt.want)
		}
	}
}

func TestFormatStep(t *testing.T) {
	step := HistoryStep{
		Operation: OpSubtract,
		Magnitude: 2,
		Before:    SingleSided(3, 2, 14),
		After:     SingleSided(3, 0, 12),
	}
	want := "both sides - 2  (3x + 2 = 14  →  3x = 12)"
	if got := FormatStep(step); got != want {
		t.Errorf("FormatStep() = %q, want %q", got, want)
	}
}

func TestFormatWorkingLaTeX(t *testing.T) {
	start := SingleSided(3, 2, 14)
	steps := []HistoryStep{
		{Operation: OpSubtract, Magnitude: 2, Before: start, After: SingleSided(3, 0, 12)},
		{Operation: OpDivide, Magnitude: 3, Before: SingleSided(3, 0, 12), After: SingleSided(1, 0, 4)},
	}
	want := "\\begin{aligned}\n" +
		"3x + 2 &= 14 && \\text{both sides } -2 \\\\\n" +
		"3x &= 12 && \\text{both sides } \\div 3 \\\\\n" +
		"x &= 4\n" +
		"\\end{aligned}"
	if got := FormatWorkingLaTeX(start, steps); got != want {
		t.Errorf("FormatWorkingLaTeX() =\n%s\nwant\n%s", got, want)
	}

	bags := []HistoryStep{{Operation: OpSubtractX, Magnitude: 1, After: TwoSided(Expression{A: 2, B: 1}, Expression{B: 9})}}
	got := FormatWorkingLaTeX(TwoSided(Expression{A: 3, B: 1}, Expression{A: 1, B: 9}), bags)
	if !strings.Contains(got, "3x + 1 &= x + 9 && \\text{both sides } -x") {
		t.Errorf("unexpected bag step rendering:\n%s", got)
	}
}
