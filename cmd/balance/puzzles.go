package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/spf13/cobra"
)

var puzzlesCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "List the available puzzles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cfg, newLogger(cfg), domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		puzzles, err := engine.Puzzles(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(puzzles)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLESSON\tEQUATION\tLABEL")
		for _, p := range puzzles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Lesson, domain.FormatEquation(p.Equation()), p.Label)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(puzzlesCmd)
	puzzlesCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
