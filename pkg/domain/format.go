package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTerm renders the x term of a coefficient. Zero renders as "".
func FormatTerm(a int) string {
	switch a {
	case 0:
		return ""
	case 1:
		return "x"
	case -1:
		return "-x"
	default:
		return strconv.Itoa(a) + "x"
	}
}

// FormatExpression renders a·x + b, never producing "+ -".
func FormatExpression(e Expression) string {
	ax := FormatTerm(e.A)
	switch {
	case e.A == 0 && e.B == 0:
		return "0"
	case e.A == 0:
		return strconv.Itoa(e.B)
	case e.B == 0:
		return ax
	case e.B > 0:
		return fmt.Sprintf("%s + %d", ax, e.B)
	default:
		return fmt.Sprintf("%s - %d", ax, -e.B)
	}
}

// FormatEquation renders an equation, e.g. "3x + 2 = 14" or "x + 3 = 2x + 1".
func FormatEquation(eq Equation) string {
	if eq.Variant == VariantSingleSided {
		return FormatExpression(eq.Left) + " = " + strconv.Itoa(eq.RightConstant())
	}
	return FormatExpression(eq.Left) + " = " + FormatExpression(eq.Right)
}

// FormatAction describes what a step does to both sides.
func FormatAction(op Operation, k int) string {
	switch op {
	case OpAddX:
		return fmt.Sprintf("both sides + %d %s of x", k, bags(k))
	case OpSubtractX:
		return fmt.Sprintf("both sides - %d %s of x", k, bags(k))
	default:
		return fmt.Sprintf("both sides %s %d", op.Symbol(), k)
	}
}

func bags(k int) string {
	if k == 1 {
		return "bag"
	}
	return "bags"
}

// FormatStep renders a history step as "both sides - 2  (3x + 2 = 14  →  3x = 12)".
func FormatStep(step HistoryStep) string {
	return fmt.Sprintf("%s  (%s  →  %s)", FormatAction(step.Operation, step.Magnitude),
		FormatEquation(step.Before), FormatEquation(step.After))
}

func latexAction(op Operation, k int) string {
	switch op {
	case OpAdd:
		return fmt.Sprintf("+%d", k)
	case OpSubtract:
		return fmt.Sprintf("-%d", k)
	case OpMultiply:
		return fmt.Sprintf("\\times %d", k)
	case OpDivide:
		return fmt.Sprintf("\\div %d", k)
	case OpAddX:
		return "+" + latexTerm(k)
	case OpSubtractX:
		return "-" + latexTerm(k)
	default:
		return string(op)
	}
}

func latexTerm(k int) string {
	if k == 1 {
		return "x"
	}
	return strconv.Itoa(k) + "x"
}

// FormatWorkingLaTeX renders a chain of steps (oldest first) as an aligned
// LaTeX block, annotating each line with the step that produced the next.
func FormatWorkingLaTeX(start Equation, steps []HistoryStep) string {
	var b strings.Builder
	b.WriteString("\\begin{aligned}\n")
	writeLine := func(eq Equation, note string) {
		left, right, _ := strings.Cut(FormatEquation(eq), " = ")
		b.WriteString(left)
		b.WriteString(" &= ")
		b.WriteString(right)
		if note != "" {
			b.WriteString(" && \\text{both sides } ")
			b.WriteString(note)
		}
	}
	current := start
	for _, step := range steps {
		writeLine(current, latexAction(step.Operation, step.Magnitude))
		b.WriteString(" \\\\\n")
		current = step.After
	}
	writeLine(current, "")
	b.WriteString("\n\\end{aligned}")
	return b.String()
}
