package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/portcfg"
	"github.com/aretw0/portcfg/internal/cli"
	"github.com/aretw0/portcfg/internal/presentation/tui"
	porthttp "github.com/aretw0/portcfg/pkg/adapters/http"
	"github.com/aretw0/portcfg/pkg/adapters/loam"
	"github.com/aretw0/portcfg/pkg/flow"
	"github.com/aretw0/portcfg/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reference port service",
	Long: `Starts an HTTP service exposing input and output ports with revision checks
and server-side validation. Ports are seeded from a directory of Markdown or
YAML documents, one per port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		logger := cli.NewLogger(cfg.Log.Level, debug)

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		fixtures := cfg.Server.Fixtures
		if cmd.Flags().Changed("fixtures") {
			fixtures, _ = cmd.Flags().GetString("fixtures")
		}

		tui.PrintBanner(cmd.ErrOrStderr(), strings.TrimSpace(portcfg.Version))

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		service := flow.NewService(
			flow.WithBaseURI(fmt.Sprintf("http://localhost:%d/nifi-api", port)),
			flow.WithLogger(logger),
		)
		if fixtures != "" {
			repo, err := loam.Open(fixtures)
			if err != nil {
				return err
			}
			entities, err := repo.Load(ctx)
			if err != nil {
				return err
			}
			if err := service.Seed(entities...); err != nil {
				return err
			}
			logger.Info("Ports seeded", "dir", fixtures, "count", len(entities))
		} else {
			logger.Warn("No fixtures configured, serving an empty flow")
		}

		opts := []porthttp.ServerOption{porthttp.WithLogger(logger)}
		if cfg.Server.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := observability.NewMetrics(reg)
			opts = append(opts, porthttp.WithMetrics(metrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}

		handler, err := porthttp.NewHandler(service, opts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting port service", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			logger.Info("Port service stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("fixtures", "", "Directory of port documents to seed the service with")
}
