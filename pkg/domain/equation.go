package domain

import "fmt"

// Expression is the linear term A·x + B.
type Expression struct {
	A int `json:"a" yaml:"a" mapstructure:"a"`
	B int `json:"b" yaml:"b" mapstructure:"b"`
}

// HasX reports whether the expression carries a variable term.
func (e Expression) HasX() bool {
	return e.A != 0
}

// IsBareX reports whether the expression is exactly x.
func (e Expression) IsBareX() bool {
	return e.A == 1 && e.B == 0
}

// IsConstant reports whether the expression has no variable term.
func (e Expression) IsConstant() bool {
	return e.A == 0
}

// Eval returns the value of the expression at x.
func (e Expression) Eval(x int) int {
	return e.A*x + e.B
}

// Variant tags which shape of equation is being tracked.
type Variant string

const (
	// VariantSingleSided is a·x + b = c. The right side never carries x.
	VariantSingleSided Variant = "single"
	// VariantTwoSided is a1·x + b1 = a2·x + b2.
	VariantTwoSided Variant = "two_sided"
)

// Equation is the canonical state of a linear equation.
//
// For VariantSingleSided the right side is tracked purely as the constant
// Right.B (see RightConstant) and Right.A is always zero.
type Equation struct {
	Variant Variant    `json:"variant"`
	Left    Expression `json:"left"`
	Right   Expression `json:"right"`
}

// SingleSided builds a·x + b = c.
func SingleSided(a, b, c int) Equation {
	return Equation{
		Variant: VariantSingleSided,
		Left:    Expression{A: a, B: b},
		Right:   Expression{B: c},
	}
}

// TwoSided builds left = right.
func TwoSided(left, right Expression) Equation {
	return Equation{
		Variant: VariantTwoSided,
		Left:    left,
		Right:   right,
	}
}

// RightConstant returns c for a single-sided equation.
func (eq Equation) RightConstant() int {
	return eq.Right.B
}

// Validate checks the variant tag and the shape it implies.
func (eq Equation) Validate() error {
	switch eq.Variant {
	case VariantSingleSided:
		if eq.Right.A != 0 {
			return fmt.Errorf("single-sided equation cannot carry x on the right (got %dx)", eq.Right.A)
		}
		return nil
	case VariantTwoSided:
		return nil
	default:
		return fmt.Errorf("unknown equation variant %q", eq.Variant)
	}
}

// Holds reports whether x satisfies the equation.
func (eq Equation) Holds(x int) bool {
	return eq.Left.Eval(x) == eq.Right.Eval(x)
}

// IsSolved reports whether x stands alone with unit coefficient on one side
// and the other side is a pure constant.
//
// Two-sided equations accept either orientation.
func (eq Equation) IsSolved() bool {
	switch eq.Variant {
	case VariantSingleSided:
		return eq.Left.IsBareX()
	case VariantTwoSided:
		leftSolved := eq.Left.IsBareX() && eq.Right.IsConstant()
		rightSolved := eq.Right.IsBareX() && eq.Left.IsConstant()
		return leftSolved || rightSolved
	default:
		return false
	}
}

// SolutionValue returns the value of x when the equation is solved.
func (eq Equation) SolutionValue() (int, bool) {
	if !eq.IsSolved() {
		return 0, false
	}
	if eq.Variant == VariantSingleSided {
		return eq.RightConstant(), true
	}
	if eq.Left.IsBareX() && eq.Right.IsConstant() {
		return eq.Right.B, true
	}
	return eq.Left.B, true
}

// String renders the equation in canonical form.
func (eq Equation) String() string {
	return FormatEquation(eq)
}
