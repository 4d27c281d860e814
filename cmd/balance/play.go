package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/balance"
	"github.com/aretw0/balance/internal/presentation/tui"
	"github.com/aretw0/balance/pkg/observability"
	"github.com/aretw0/balance/pkg/runner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play [puzzle-id]",
	Short: "Solve puzzles interactively",
	Long: `Starts the interactive balance. Type an operation and a number, e.g. "+ 3", "-x 1" or "÷ 2".
A bare number repeats the last operation. Type "help" for all commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		engine, err := newEngine(cfg, logger, observability.LoggingHooks(logger))
		if err != nil {
			return err
		}

		puzzleID, _ := cmd.Flags().GetString("puzzle")
		if len(args) > 0 {
			puzzleID = args[0]
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")
		sessionID, _ := cmd.Flags().GetString("session")

		in, out := cmd.InOrStdin(), cmd.OutOrStdout()
		opts := []runner.Option{
			runner.WithEngine(engine),
			runner.WithPuzzle(puzzleID),
			runner.WithLogger(logger),
			runner.WithMaxInputSize(cfg.MaxInputSize),
		}

		if jsonMode {
			opts = append(opts, runner.WithInputHandler(runner.NewJSONHandler(in, out)))
		} else {
			opts = append(opts, runner.WithInputHandler(newTextHandler(in, out, plain || !isTerminal(out))))
		}

		if cfg.Redis.Enabled() {
			store, _, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			opts = append(opts, runner.WithStore(store), runner.WithSessionID(sessionID))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runner.NewRunner(opts...).Run(ctx); err != nil {
			return fmt.Errorf("play: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("puzzle", "", "Puzzle to start with (default: the first lesson)")
	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	playCmd.Flags().Bool("plain", false, "Disable colours and Markdown rendering")
	playCmd.Flags().String("session", "", "Session ID used when mirroring state to Redis")

	rootCmd.RunE = playCmd.RunE
	rootCmd.Args = playCmd.Args
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}

// newTextHandler picks rich or plain output for w.
func newTextHandler(in io.Reader, out io.Writer, plain bool) runner.IOHandler {
	if plain {
		return runner.NewTextHandler(in, out, runner.WithTextHandlerStyler(tui.NewStyler(out, true)))
	}

	tui.PrintBanner(out, balance.Version())
	width := 80
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	opts := []runner.TextHandlerOption{runner.WithTextHandlerStyler(tui.NewStyler(out, false))}
	if renderer, err := tui.NewRenderer(width); err == nil {
		opts = append(opts, runner.WithTextHandlerRenderer(renderer))
	}
	return runner.NewTextHandler(in, out, opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
