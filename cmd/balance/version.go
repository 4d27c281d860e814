package main

import (
	"fmt"

	"github.com/aretw0/balance"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of balance",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "balance version %s\n", balance.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
