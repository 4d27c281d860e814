package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/balance/pkg/domain"
)

const (
	// MaxBags is the number of bag tokens drawn before the count is implied.
	MaxBags = 8
	// MaxCoins is the number of coin tokens drawn before a ×N token is added.
	MaxCoins = 12

	bagToken     = "[x]"
	coinToken    = "(1)"
	negCoinToken = "(-)"
)

// Plate is the token view of one side of the scale.
type Plate struct {
	Bags     int  `json:"bags"`
	Coins    int  `json:"coins"`
	Negative bool `json:"negative,omitempty"`
	// Overflow is the full constant when it exceeds MaxCoins, else 0.
	Overflow int `json:"overflow,omitempty"`
}

// PlateFor converts an expression into plate tokens.
func PlateFor(e domain.Expression) Plate {
	p := Plate{
		Bags:     min(abs(e.A), MaxBags),
		Coins:    min(abs(e.B), MaxCoins),
		Negative: e.B < 0,
	}
	if abs(e.B) > MaxCoins {
		p.Overflow = abs(e.B)
	}
	return p
}

// Plates returns the left and right plates of eq.
func Plates(eq domain.Equation) (left, right Plate) {
	if eq.Variant == domain.VariantSingleSided {
		return PlateFor(eq.Left), PlateFor(domain.Expression{B: eq.RightConstant()})
	}
	return PlateFor(eq.Left), PlateFor(eq.Right)
}

// String renders the plate tokens on one line.
func (p Plate) String() string {
	tokens := make([]string, 0, p.Bags+p.Coins+1)
	for i := 0; i < p.Bags; i++ {
		tokens = append(tokens, bagToken)
	}
	coin := coinToken
	if p.Negative {
		coin = negCoinToken
	}
	for i := 0; i < p.Coins; i++ {
		tokens = append(tokens, coin)
	}
	if p.Overflow > 0 {
		tokens = append(tokens, fmt.Sprintf("×%d", p.Overflow))
	}
	if len(tokens) == 0 {
		return "(empty)"
	}
	return strings.Join(tokens, " ")
}

// RenderScale draws both plates of eq as a text balance scale.
func RenderScale(eq domain.Equation) string {
	left, right := Plates(eq)
	var b strings.Builder
	b.WriteString("           ▲\n")
	b.WriteString("  ═════════╩═════════\n")
	fmt.Fprintf(&b, "  left:  %s\n", left)
	fmt.Fprintf(&b, "  right: %s\n", right)
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
