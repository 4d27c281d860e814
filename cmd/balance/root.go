package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/balance"
	"github.com/aretw0/balance/internal/config"
	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "balance",
	Short: "Balance solves linear equations one balanced step at a time",
	Long: `Balance models an equation as a pan balance: bags of x and unit coins on each side.
Every step must be done to both sides, so the scale stays level until x stands alone.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to balance.yaml (default ./"+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().String("puzzles", "", "Directory of puzzle documents replacing the built-in lessons")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Shorthand for --log-level=debug")
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}
	if explicit {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg := &loaded

	if dir, _ := cmd.Flags().GetString("puzzles"); dir != "" {
		cfg.PuzzlesDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}

// newEngine builds the engine over the configured catalog.
func newEngine(cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*balance.Engine, error) {
	opts := []balance.Option{
		balance.WithLogger(logger),
		balance.WithLifecycleHooks(hooks),
	}
	if cfg.PuzzlesDir != "" {
		opts = append(opts, balance.WithPuzzlesDir(cfg.PuzzlesDir))
	}
	engine, err := balance.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing balance: %w", err)
	}
	return engine, nil
}
