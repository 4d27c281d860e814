/*
Package domain contains the core domain models of the Balance engine.

It defines the equation being balanced, the operations a learner may apply to
both sides, the per-session state with its undo history, and the errors an
operation can be refused with. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Expression: a linear term A·x + B.
  - Equation: a tagged union (single-sided a·x + b = c, or two-sided) with solved detection.
  - Operation: add, subtract, multiply, divide, and the two-sided add_x / subtract_x.
  - State: the session snapshot (puzzle, equation, history, guidance message).
  - Puzzle: a read-only template a session is loaded from.
  - Hint: the next recommended step.
*/
package domain
