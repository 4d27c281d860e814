package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operation is a step applied to both sides of an equation.
type Operation string

const (
	OpAdd       Operation = "add"
	OpSubtract  Operation = "subtract"
	OpMultiply  Operation = "multiply"
	OpDivide    Operation = "divide"
	OpAddX      Operation = "add_x"      // Two-sided only: add k bags of x.
	OpSubtractX Operation = "subtract_x" // Two-sided only: remove k bags of x.
)

var singleSidedOps = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Two-sided puzzles lead with the gather steps.
var twoSidedOps = []Operation{OpSubtractX, OpAddX, OpAdd, OpSubtract, OpMultiply, OpDivide}

// OperationsFor lists the operations valid for a variant, in menu order.
func OperationsFor(v Variant) []Operation {
	switch v {
	case VariantSingleSided:
		return append([]Operation(nil), singleSidedOps...)
	case VariantTwoSided:
		return append([]Operation(nil), twoSidedOps...)
	default:
		return nil
	}
}

// Supports reports whether op can be applied to an equation of variant v.
func (op Operation) Supports(v Variant) bool {
	for _, candidate := range OperationsFor(v) {
		if candidate == op {
			return true
		}
	}
	return false
}

// Symbol returns the short notation used in step logs.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	case OpAddX:
		return "+x"
	case OpSubtractX:
		return "-x"
	default:
		return string(op)
	}
}

// ParseOperation accepts canonical names as well as the symbols shown to
// learners (+, -, ×, *, ÷, /, +x, -x).
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+", "plus":
		return OpAdd, nil
	case "subtract", "sub", "-", "−", "minus":
		return OpSubtract, nil
	case "multiply", "mul", "×", "*", "times":
		return OpMultiply, nil
	case "divide", "div", "÷", "/":
		return OpDivide, nil
	case "add_x", "addx", "+x":
		return OpAddX, nil
	case "subtract_x", "subtractx", "-x", "−x":
		return OpSubtractX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// ParseMagnitude converts user text to a magnitude.
// Anything that is not a non-negative whole number is rejected with
// ErrInvalidMagnitude and a reason suitable for the learner.
func ParseMagnitude(s string) (int, error) {
	text := strings.TrimSpace(s)
	if k, err := strconv.Atoi(text); err == nil {
		if k < 0 {
			return 0, newMagnitudeError(k, "Use the subtract operation instead of a negative number.")
		}
		if k > math.MaxInt32 {
			return 0, newMagnitudeError(0, "That number is too large.")
		}
		return k, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		if strings.Contains(text, "/") {
			return 0, newMagnitudeError(0, "Please enter a whole number, no decimals or fractions.")
		}
		return 0, newMagnitudeError(0, "Please enter a number.")
	}
	if f != math.Trunc(f) {
		return 0, newMagnitudeError(0, "Please enter a whole number, no decimals or fractions.")
	}
	if f < 0 {
		return 0, newMagnitudeError(0, "Use the subtract operation instead of a negative number.")
	}
	if f > math.MaxInt32 {
		return 0, newMagnitudeError(0, "That number is too large.")
	}
	return int(f), nil
}

func newMagnitudeError(k int, reason string) *OperationError {
	return &OperationError{Kind: ErrInvalidMagnitude, Magnitude: k, Reason: reason}
}
