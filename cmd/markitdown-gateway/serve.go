// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/markitdown-gateway/internal/convert"
	"github.com/pdiddy/markitdown-gateway/internal/gateway"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion gateway HTTP server",
	Long: `Serve starts the HTTP server exposing POST /convert (bearer-token
protected), GET / (service descriptor), and GET /health. Requests are
handled concurrently; each one stages its upload to a scratch file,
invokes the markitdown engine, and cleans up on every outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadGatewayConfig()

		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Server.Listen = listen
		}
		if scratch, _ := cmd.Flags().GetString("scratch-dir"); scratch != "" {
			cfg.Server.ScratchDir = scratch
		}

		logger := newLogger(os.Stderr)
		if cfg.Auth.Token == defaultToken {
			logger.Warn("MARKITDOWN_API_TOKEN is not set; using the insecure placeholder token")
		}

		conv, err := convert.NewConverter(cfg.Conversion)
		if err != nil {
			return err
		}

		gw := gateway.New(cfg, conv, logger)
		srv := &http.Server{
			Addr:    cfg.Server.Listen,
			Handler: gw.Handler(),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		logger.WithField("listen", cfg.Server.Listen).Info("gateway listening")

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides server.listen)")
	serveCmd.Flags().String("scratch-dir", "", "scratch directory for staged uploads (overrides server.scratch_dir)")

	rootCmd.AddCommand(serveCmd)
}
