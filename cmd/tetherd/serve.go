package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tether"
	"github.com/vango-dev/tether/internal/config"
	"github.com/vango-dev/tether/pkg/dom/remote"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		dir  string
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo todo list",
		Long: `Serve the demo todo list over the remote host protocol.

Without --config, tetherd looks for tether.json in the working directory
and its parents, and runs with defaults when none is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(resolveConfigDir(dir, "."), addr)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&dir, "config", "c", "", "Directory containing tether.json")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides remote.addr)")

	return cmd
}

// resolveConfigDir returns flagDir when set, else the nearest directory at
// or above start holding tether.json, else start.
func resolveConfigDir(flagDir, start string) string {
	if flagDir != "" {
		return flagDir
	}
	root, err := config.FindProjectRoot(start)
	if err != nil {
		return start
	}
	return root
}

// loadServeConfig loads dir and applies the --addr override.
func loadServeConfig(dir, addr string, opts ...tether.LoadOption) (tether.Config, error) {
	cfg, err := tether.LoadConfig(dir, opts...)
	if err != nil {
		return tether.Config{}, err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	return cfg, nil
}

func newRouter(cfg tether.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", remote.NewHandler(todoApp, cfg.RemoteOptions()...))
	return r
}

// serve runs the HTTP server until ctx is done, then shuts it down.
func serve(ctx context.Context, cfg tether.Config) error {
	logger := cfg.Logger

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	logger.Info("server shutdown complete")
	return nil
}
