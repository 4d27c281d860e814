package runtime

import (
	"fmt"

	"github.com/aretw0/balance/pkg/domain"
)

const (
	introSingleSided = "Goal: leave x alone on one side, then substitute back to check."
	introTwoSided    = "Goal: first gather the bags (x) onto one side, then leave x alone; finally substitute back to check."

	appliedMessage       = "Nice: you did the same thing to both sides, so the equals sign still holds."
	keepIsolatingMessage = "Hint: keep going until x stands alone."
)

// IntroMessage returns the guidance shown when a puzzle is loaded.
func IntroMessage(v domain.Variant) string {
	if v == domain.VariantTwoSided {
		return introTwoSided
	}
	return introSingleSided
}

func solvedMessage(x int) string {
	return fmt.Sprintf("Solved: x = %d. Next step: substitute back into the original equation to check ✓", x)
}

// resultMessage is the guidance after a successful step.
func resultMessage(eq domain.Equation) string {
	if x, ok := eq.SolutionValue(); ok {
		return solvedMessage(x)
	}
	return appliedMessage
}
