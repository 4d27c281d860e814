package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/balance/pkg/adapters/http"
	redisAdapter "github.com/aretw0/balance/pkg/adapters/redis"
	"github.com/aretw0/balance/pkg/observability"
	"github.com/aretw0/balance/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves sessions over a JSON API with a server-sent event stream and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		logger := newLogger(cfg)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		engine, err := newEngine(cfg, logger, observability.Combine(observability.LoggingHooks(logger), metrics.Hooks()))
		if err != nil {
			return err
		}

		store, redisStore, err := newStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		streams := httpAdapter.NewStreamManager(logger)
		managerOpts := []session.Option{
			session.WithEngine(engine.Runtime()),
			session.WithCatalog(engine.Catalog()),
			session.WithLogger(logger),
			session.WithChangeHook(streams.Publish),
		}
		if redisStore != nil {
			managerOpts = append(managerOpts,
				session.WithLocker(redisAdapter.NewLocker(redisStore.Client(), redisStore.Prefix())))
		}
		manager := session.NewManager(store, managerOpts...)

		handler, err := httpAdapter.NewHandler(manager, streams,
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxInputSize(cfg.MaxInputSize),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting balance server", "address", srv.Addr, "redis", cfg.Redis.Enabled())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			logger.Info("balance server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
