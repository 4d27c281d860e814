package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/balance/pkg/adapters/mcp"
	"github.com/aretw0/balance/pkg/observability"
	"github.com/aretw0/balance/pkg/session"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes puzzles and sessions as MCP tools so agents can solve equations step by step.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port := cfg.MCP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		if !cmd.Flags().Changed("transport") && port > 0 {
			transport = "sse"
		}

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := newLogger(cfg)

		engine, err := newEngine(cfg, logger, observability.LoggingHooks(logger))
		if err != nil {
			return err
		}
		store, _, err := newStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		manager := session.NewManager(store,
			session.WithEngine(engine.Runtime()),
			session.WithCatalog(engine.Catalog()),
			session.WithLogger(logger),
		)
		srv := mcp.NewServer(manager, mcp.WithLogger(logger), mcp.WithMaxInputSize(cfg.MaxInputSize))

		switch transport {
		case "stdio":
			logger.Info("starting balance mcp server (stdio)")
			return srv.ServeStdio()
		case "sse":
			if port <= 0 {
				port = 8080
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			logger.Info("mcp server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 0, "Port to listen on (only for SSE, overrides mcp.port)")
}
