package main

import (
	"fmt"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <puzzle-id>",
	Short: "Print the worked solution of a puzzle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cfg, newLogger(cfg), domain.LifecycleHooks{})
		if err != nil {
			return err
		}

		puzzle, steps, err := engine.Solve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if latex, _ := cmd.Flags().GetBool("latex"); latex {
			fmt.Fprintln(out, domain.FormatWorkingLaTeX(puzzle.Equation(), steps))
			return nil
		}

		fmt.Fprintf(out, "[%s] %s\n", puzzle.ID, puzzle.Title())
		current := puzzle.Equation()
		fmt.Fprintf(out, "    %s\n", current)
		for i, step := range steps {
			fmt.Fprintf(out, "%2d. %s\n", i+1, domain.FormatAction(step.Operation, step.Magnitude))
			fmt.Fprintf(out, "    %s\n", step.After)
			current = step.After
		}
		if x, ok := current.SolutionValue(); ok {
			fmt.Fprintf(out, "Check: %s\n", checkLine(puzzle.Equation(), x))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Bool("latex", false, "Print the working as an aligned LaTeX block")
}

// checkLine substitutes x back into the original equation.
func checkLine(eq domain.Equation, x int) string {
	left, right := eq.Left.Eval(x), eq.Right.Eval(x)
	mark := "✓"
	if left != right {
		mark = "✗"
	}
	return fmt.Sprintf("x = %d gives %d = %d %s", x, left, right, mark)
}
