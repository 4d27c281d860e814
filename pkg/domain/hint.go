package domain

// HintKind classifies the advice returned by the hint algorithm.
type HintKind string

const (
	HintSolved        HintKind = "solved"         // x is isolated; check by substitution.
	HintStep          HintKind = "step"           // Operation and Magnitude are set.
	HintKeepIsolating HintKind = "keep_isolating" // Fallback, unreachable for well-formed states.
	HintIdentity      HintKind = "identity"       // No x left and both sides agree.
	HintContradiction HintKind = "contradiction"  // No x left and both sides differ.
)

// Side names one side of the equals sign.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Hint is the next recommended move for an equation.
type Hint struct {
	Kind      HintKind  `json:"kind"`
	Operation Operation `json:"operation,omitempty"`
	Magnitude int       `json:"magnitude,omitempty"`
	Side      Side      `json:"side,omitempty"`
	Solution  *int      `json:"solution,omitempty"`
	Message   string    `json:"message"`
}

// Actionable reports whether the hint names an operation to apply.
func (h Hint) Actionable() bool {
	return h.Kind == HintStep
}
