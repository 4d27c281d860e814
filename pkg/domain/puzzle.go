package domain

import "fmt"

// Puzzle is a read-only template. Loading one resets a session to its values.
type Puzzle struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Lesson string `json:"lesson,omitempty" yaml:"lesson,omitempty"`

	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
	C int `json:"c" yaml:"c"`

	// Right makes the puzzle two-sided; C is then ignored.
	Right *Expression `json:"right,omitempty" yaml:"right,omitempty"`
}

// Variant reports which kind of equation the puzzle starts as.
func (p Puzzle) Variant() Variant {
	if p.Right != nil {
		return VariantTwoSided
	}
	return VariantSingleSided
}

// Equation builds the initial equation for the puzzle.
func (p Puzzle) Equation() Equation {
	if p.Right != nil {
		return TwoSided(Expression{A: p.A, B: p.B}, *p.Right)
	}
	return SingleSided(p.A, p.B, p.C)
}

// Validate checks the template is usable.
func (p Puzzle) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("puzzle is missing an id")
	}
	return p.Equation().Validate()
}

// Title returns the label, falling back to the formatted equation.
func (p Puzzle) Title() string {
	if p.Label != "" {
		return p.Label
	}
	return FormatEquation(p.Equation())
}
