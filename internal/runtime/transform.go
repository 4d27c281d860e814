package runtime

import (
	"fmt"

	"github.com/aretw0/balance/pkg/domain"
)

// Transform applies op with magnitude k to both sides of eq.
// It is pure: eq is never modified, and on error the zero Equation is returned.
func Transform(eq domain.Equation, op domain.Operation, k int) (domain.Equation, error) {
	if err := eq.Validate(); err != nil {
		return domain.Equation{}, &domain.OperationError{
			Kind:      domain.ErrUnsupportedOperation,
			Operation: op,
			Magnitude: k,
			Reason:    err.Error(),
		}
	}
	if !op.Supports(eq.Variant) {
		return domain.Equation{}, unsupported(eq.Variant, op, k)
	}
	if k < 0 {
		return domain.Equation{}, &domain.OperationError{
			Kind:      domain.ErrInvalidMagnitude,
			Operation: op,
			Magnitude: k,
			Reason:    "Use the subtract operation instead of a negative number.",
		}
	}

	c := calc{op: op, k: k}
	var next domain.Equation
	switch eq.Variant {
	case domain.VariantSingleSided:
		next = transformSingle(&c, eq)
	case domain.VariantTwoSided:
		next = transformTwoSided(&c, eq)
	}
	if c.err != nil {
		return domain.Equation{}, c.err
	}
	return next, nil
}

func transformSingle(c *calc, eq domain.Equation) domain.Equation {
	a, b, rc := eq.Left.A, eq.Left.B, eq.RightConstant()
	switch c.op {
	case domain.OpAdd:
		return domain.SingleSided(a, c.add(b), c.add(rc))
	case domain.OpSubtract:
		return domain.SingleSided(a, c.sub(b), c.sub(rc))
	case domain.OpMultiply:
		return domain.SingleSided(c.mul(a), c.mul(b), c.mul(rc))
	case domain.OpDivide:
		if c.checkDivisible("Try adding or subtracting first so that it divides evenly.", a, b, rc) {
			return domain.SingleSided(a/c.k, b/c.k, rc/c.k)
		}
	}
	return eq
}

func transformTwoSided(c *calc, eq domain.Equation) domain.Equation {
	l, r := eq.Left, eq.Right
	switch c.op {
	case domain.OpAddX:
		return domain.TwoSided(domain.Expression{A: c.add(l.A), B: l.B}, domain.Expression{A: c.add(r.A), B: r.B})
	case domain.OpSubtractX:
		limit := min(l.A, r.A)
		if c.k > limit {
			c.fail(domain.ErrInsufficientXTerms, fmt.Sprintf(
				"Not enough bags to take away: at most %d %s of x can be removed from both sides.", limit, plural(limit, "bag", "bags")))
			return eq
		}
		return domain.TwoSided(domain.Expression{A: c.sub(l.A), B: l.B}, domain.Expression{A: c.sub(r.A), B: r.B})
	case domain.OpAdd:
		return domain.TwoSided(domain.Expression{A: l.A, B: c.add(l.B)}, domain.Expression{A: r.A, B: c.add(r.B)})
	case domain.OpSubtract:
		return domain.TwoSided(domain.Expression{A: l.A, B: c.sub(l.B)}, domain.Expression{A: r.A, B: c.sub(r.B)})
	case domain.OpMultiply:
		return domain.TwoSided(
			domain.Expression{A: c.mul(l.A), B: c.mul(l.B)},
			domain.Expression{A: c.mul(r.A), B: c.mul(r.B)},
		)
	case domain.OpDivide:
		if c.checkDivisible("Try adding or subtracting first, or clear the x terms from one side.", l.A, l.B, r.A, r.B) {
			return domain.TwoSided(
				domain.Expression{A: l.A / c.k, B: l.B / c.k},
				domain.Expression{A: r.A / c.k, B: r.B / c.k},
			)
		}
	}
	return eq
}

// calc performs checked arithmetic for one operation and keeps the first failure.
type calc struct {
	op  domain.Operation
	k   int
	err error
}

func (c *calc) fail(kind error, reason string) {
	if c.err == nil {
		c.err = &domain.OperationError{Kind: kind, Operation: c.op, Magnitude: c.k, Reason: reason}
	}
}

func (c *calc) overflow() {
	c.fail(domain.ErrCoefficientOverflow, "The numbers would grow too large. Try a smaller step.")
}

func (c *calc) add(v int) int {
	sum := v + c.k
	if sum < v {
		c.overflow()
	}
	return sum
}

func (c *calc) sub(v int) int {
	diff := v - c.k
	if diff > v {
		c.overflow()
	}
	return diff
}

func (c *calc) mul(v int) int {
	if v == 0 || c.k == 0 {
		return 0
	}
	product := v * c.k
	if product/c.k != v {
		c.overflow()
	}
	return product
}

func (c *calc) checkDivisible(advice string, values ...int) bool {
	if c.k == 0 {
		c.fail(domain.ErrDivisionByZero, "You cannot divide by 0.")
		return false
	}
	for _, v := range values {
		if v%c.k != 0 {
			c.fail(domain.ErrNonIntegralResult, "This step would produce fractions. "+advice)
			return false
		}
	}
	return true
}

func unsupported(v domain.Variant, op domain.Operation, k int) error {
	reason := fmt.Sprintf("%q is not available for this equation.", op)
	if op == domain.OpAddX || op == domain.OpSubtractX {
		reason = "Moving bags of x is only available when x appears on both sides."
	}
	if v == domain.VariantTwoSided && !op.Supports(domain.VariantSingleSided) {
		reason = fmt.Sprintf("%q is not a known operation.", op)
	}
	return &domain.OperationError{Kind: domain.ErrUnsupportedOperation, Operation: op, Magnitude: k, Reason: reason}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
