package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/intentd/internal/adapters/web"
	"github.com/corey/intentd/internal/app"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recognition HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $INTENTD_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	cfg.Watch = true

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Stop()
	a.Start()

	addr := serveAddr
	if addr == "" {
		addr = envOr("INTENTD_ADDR", ":8080")
	}
	srv := web.New(a, addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("[serve] %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
