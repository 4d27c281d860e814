package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/ports"
	"github.com/spf13/cobra"
)

var errNoSharedStore = errors.New("session commands need a shared store: set redis.addr in the config")

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect sessions held in the shared store",
	Long:  `List, inspect, and remove sessions persisted in Redis by "serve", "mcp" or "play".`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sharedStore(cmd)
		if err != nil {
			return err
		}
		sessions, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No active sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Active Sessions:")
		for _, id := range sessions {
			line := "- " + id
			if state, err := store.Load(cmd.Context(), id); err == nil && state.Loaded() {
				line += fmt.Sprintf("  [%s] %s", state.PuzzleID, domain.FormatEquation(state.Equation))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sharedStore(cmd)
		if err != nil {
			return err
		}
		state, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading session '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling state: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sharedStore(cmd)
		if err != nil {
			return err
		}
		var errs []error
		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("removing '%s': %w", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func sharedStore(cmd *cobra.Command) (ports.StateStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cfg.Redis.Enabled() {
		return nil, errNoSharedStore
	}
	store, _, err := newStore(cmd.Context(), cfg)
	return store, err
}
