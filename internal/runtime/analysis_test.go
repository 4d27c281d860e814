package runtime

import (
	"errors"
	"testing"

	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		eq      domain.Equation
		kind    domain.HintKind
		op      domain.Operation
		k       int
		message string
	}{
		{"clear positive constant", domain.SingleSided(3, 2, 14), domain.HintStep, domain.OpSubtract, 2,
			`Hint: to get rid of "+2", subtract 2 from both sides.`},
		{"clear negative constant", domain.SingleSided(1, -4, 6), domain.HintStep, domain.OpAdd, 4,
			`Hint: to get rid of "-4", add 4 to both sides.`},
		{"divide coefficient", domain.SingleSided(4, 0, 20), domain.HintStep, domain.OpDivide, 4,
			`Hint: to turn "4x" into "x", divide both sides by 4.`},
		{"solved", domain.SingleSided(1, 0, 4), domain.HintSolved, "", 0,
			"Solved: x = 4. Next step: substitute back into the original equation to check ✓"},
		{"gather bags", two(3, 1, 1, 9), domain.HintStep, domain.OpSubtractX, 1,
			"Hint: gather the bags first: take 1 bag of x from both sides (that is, both sides -x)."},
		{"gather many bags", two(3, 1, 2, 9), domain.HintStep, domain.OpSubtractX, 2,
			"Hint: gather the bags first: take 2 bags of x from both sides (that is, both sides -2x)."},
		{"gather negative bags", two(-2, 1, 1, 4), domain.HintStep, domain.OpAddX, 2,
			"Hint: gather the bags first: add 2 bags of x to both sides (that is, both sides +2x)."},
		{"constant after gathering", two(2, 1, 0, 9), domain.HintStep, domain.OpSubtract, 1,
			"Hint: move the constant off the left side: both sides -1."},
		{"constant on right", two(0, 3, 1, 1), domain.HintStep, domain.OpSubtract, 1,
			"Hint: move the constant off the right side: both sides -1."},
		{"divide on right", two(0, 8, 2, 0), domain.HintStep, domain.OpDivide, 2,
			`Hint: to turn "2x" into "x", divide both sides by 2.`},
		{"solved on right", two(0, 2, 1, 0), domain.HintSolved, "", 0,
			"Solved: x = 2. Next step: substitute back into the original equation to check ✓"},
		{"identity", two(0, 5, 0, 5), domain.HintIdentity, "", 0,
			"There is no x left and both sides equal 5, so every x satisfies this equation."},
		{"constant without x", domain.SingleSided(0, 3, 7), domain.HintStep, domain.OpSubtract, 3,
			`Hint: to get rid of "+3", subtract 3 from both sides.`},
		{"constant equal to right", domain.SingleSided(0, 7, 7), domain.HintStep, domain.OpSubtract, 7,
			`Hint: to get rid of "+7", subtract 7 from both sides.`},
		{"contradiction", domain.SingleSided(0, 0, 7), domain.HintContradiction, "", 0,
			"There is no x left and 0 ≠ 7, so this equation has no solution. Undo a step and try another route."},
		{"single identity", domain.SingleSided(0, 0, 0), domain.HintIdentity, "", 0,
			"There is no x left and both sides equal 0, so every x satisfies this equation."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Suggest(tt.eq)
			assert.Equal(t, tt.kind, h.Kind)
			assert.Equal(t, tt.op, h.Operation)
			assert.Equal(t, tt.k, h.Magnitude)
			assert.Equal(t, tt.message, h.Message)
			assert.Equal(t, tt.kind == domain.HintStep, h.Actionable())
		})
	}
}

// Constants are never moved while both sides still hold bags.
func TestSuggest_GatherBeforeIsolate(t *testing.T) {
	eq := two(3, 1, 1, 9)

	_, err := Transform(eq, domain.OpSubtractX, 2)
	require.ErrorIs(t, err, domain.ErrInsufficientXTerms)

	eq, err = Transform(eq, domain.OpSubtractX, 1)
	require.NoError(t, err)
	assert.Equal(t, two(2, 1, 0, 9), eq)

	h := Suggest(eq)
	assert.Equal(t, domain.OpSubtract, h.Operation)
	assert.Equal(t, 1, h.Magnitude)
}

func TestSolve_BuiltinPuzzles(t *testing.T) {
	want := map[string]int{"L01-1": 4, "L02-1": 10, "L03-1": 5, "L04-1": 4, "L05-1": 2, "L05-2": 4}
	for _, p := range memory.DefaultPuzzles() {
		t.Run(p.ID, func(t *testing.T) {
			start := p.Equation()
			steps, err := Solve(start, 0)
			require.NoError(t, err)
			require.NotEmpty(t, steps)

			prev := start
			for _, s := range steps {
				assert.Equal(t, prev, s.Before)
				next, err := Transform(s.Before, s.Operation, s.Magnitude)
				require.NoError(t, err)
				assert.Equal(t, next, s.After)
				prev = s.After
			}
			x, ok := prev.SolutionValue()
			require.True(t, ok)
			assert.Equal(t, want[p.ID], x)
			assert.True(t, start.Holds(x))
		})
	}
}

func TestSolve_StopsWithoutProgress(t *testing.T) {
	steps, err := Solve(domain.SingleSided(2, 1, 4), 0)
	assert.True(t, errors.Is(err, ErrNoProgress), "got %v", err)
	assert.Len(t, steps, 1)

	_, err = Solve(domain.SingleSided(-1, 0, 5), 0)
	assert.ErrorIs(t, err, ErrNoProgress)

	_, err = Solve(two(0, 5, 0, 5), 0)
	assert.ErrorIs(t, err, ErrNoProgress)

	steps, err = Solve(domain.SingleSided(1, 0, 3), 0)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestSolve_StepBudget(t *testing.T) {
	_, err := Solve(domain.SingleSided(3, 2, 14), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solution reached within 1 steps")
}
