package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/balance/pkg/domain"
)

// DefaultMaxSolveSteps bounds Solve for equations that never converge.
const DefaultMaxSolveSteps = 32

// ErrNoProgress is returned by Solve when the suggested step cannot move the equation forward.
var ErrNoProgress = errors.New("no applicable next step")

// Suggest proposes the single best next operation for eq.
// It is a greedy one-step advisor, deterministic and free of side effects.
func Suggest(eq domain.Equation) domain.Hint {
	if x, ok := eq.SolutionValue(); ok {
		return domain.Hint{
			Kind:     domain.HintSolved,
			Solution: &x,
			Message:  solvedMessage(x),
		}
	}

	switch eq.Variant {
	case domain.VariantSingleSided:
		return suggestSingle(eq)
	case domain.VariantTwoSided:
		return suggestTwoSided(eq)
	default:
		return domain.Hint{Kind: domain.HintKeepIsolating, Message: keepIsolatingMessage}
	}
}

func suggestSingle(eq domain.Equation) domain.Hint {
	l := eq.Left
	if l.B != 0 {
		return clearConstant(l.B, domain.SideLeft, "")
	}
	if l.A == 0 {
		return noVariable(0, eq.RightConstant())
	}
	if l.A != 1 {
		return divideBy(l.A, domain.SideLeft)
	}
	return domain.Hint{Kind: domain.HintKeepIsolating, Message: keepIsolatingMessage}
}

func suggestTwoSided(eq domain.Equation) domain.Hint {
	l, r := eq.Left, eq.Right
	if l.HasX() && r.HasX() {
		k := min(l.A, r.A)
		if k < 0 {
			// Removing a negative number of bags is adding bags.
			return domain.Hint{
				Kind:      domain.HintStep,
				Operation: domain.OpAddX,
				Magnitude: -k,
				Message: fmt.Sprintf("Hint: gather the bags first: add %d %s of x to both sides (that is, both sides +%s).",
					-k, plural(-k, "bag", "bags"), domain.FormatTerm(-k)),
			}
		}
		return domain.Hint{
			Kind:      domain.HintStep,
			Operation: domain.OpSubtractX,
			Magnitude: k,
			Message: fmt.Sprintf("Hint: gather the bags first: take %d %s of x from both sides (that is, both sides -%s).",
				k, plural(k, "bag", "bags"), domain.FormatTerm(k)),
		}
	}

	xSide, side := l, domain.SideLeft
	if !l.HasX() {
		xSide, side = r, domain.SideRight
	}
	if !xSide.HasX() {
		return noVariable(l.B, r.B)
	}
	if xSide.B != 0 {
		return clearConstant(xSide.B, side, fmt.Sprintf("move the constant off the %s side: ", side))
	}
	if xSide.A != 1 {
		return divideBy(xSide.A, side)
	}
	return domain.Hint{Kind: domain.HintKeepIsolating, Message: keepIsolatingMessage}
}

// clearConstant recommends the additive inverse of b.
func clearConstant(b int, side domain.Side, lead string) domain.Hint {
	h := domain.Hint{Kind: domain.HintStep, Side: side}
	if b > 0 {
		h.Operation, h.Magnitude = domain.OpSubtract, b
	} else {
		h.Operation, h.Magnitude = domain.OpAdd, -b
	}
	if lead != "" {
		h.Message = fmt.Sprintf("Hint: %sboth sides %s%d.", lead, h.Operation.Symbol(), h.Magnitude)
		return h
	}
	if b > 0 {
		h.Message = fmt.Sprintf("Hint: to get rid of \"+%d\", subtract %d from both sides.", b, b)
	} else {
		h.Message = fmt.Sprintf("Hint: to get rid of \"-%d\", add %d to both sides.", -b, -b)
	}
	return h
}

func divideBy(a int, side domain.Side) domain.Hint {
	return domain.Hint{
		Kind:      domain.HintStep,
		Operation: domain.OpDivide,
		Magnitude: a,
		Side:      side,
		Message:   fmt.Sprintf("Hint: to turn \"%s\" into \"x\", divide both sides by %d.", domain.FormatTerm(a), a),
	}
}

func noVariable(left, right int) domain.Hint {
	if left == right {
		return domain.Hint{
			Kind:    domain.HintIdentity,
			Message: fmt.Sprintf("There is no x left and both sides equal %d, so every x satisfies this equation.", left),
		}
	}
	return domain.Hint{
		Kind: domain.HintContradiction,
		Message: fmt.Sprintf("There is no x left and %d ≠ %d, so this equation has no solution. Undo a step and try another route.",
			left, right),
	}
}

// Solve follows Suggest from eq until it is solved, returning the steps
// taken (oldest first). It stops with ErrNoProgress when a suggestion is
// not an applicable step, and fails when maxSteps is exhausted.
func Solve(eq domain.Equation, maxSteps int) ([]domain.HistoryStep, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSolveSteps
	}
	steps := make([]domain.HistoryStep, 0, 4)
	current := eq
	for len(steps) < maxSteps {
		hint := Suggest(current)
		if hint.Kind == domain.HintSolved {
			return steps, nil
		}
		if !hint.Actionable() {
			return steps, fmt.Errorf("%w: %s", ErrNoProgress, hint.Message)
		}
		next, err := Transform(current, hint.Operation, hint.Magnitude)
		if err != nil {
			return steps, fmt.Errorf("%w: %s %d: %v", ErrNoProgress, hint.Operation, hint.Magnitude, err)
		}
		steps = append(steps, domain.HistoryStep{
			Operation: hint.Operation,
			Magnitude: hint.Magnitude,
			Before:    current,
			After:     next,
		})
		current = next
	}
	if current.IsSolved() {
		return steps, nil
	}
	return steps, fmt.Errorf("no solution reached within %d steps", maxSteps)
}
