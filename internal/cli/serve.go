package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/swagger-preview/internal/adapters/swaggerui"
	"github.com/GabrielNunesIT/swagger-preview/internal/loader"
	"github.com/GabrielNunesIT/swagger-preview/internal/server"
	"github.com/GabrielNunesIT/swagger-preview/internal/viewer"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}

	cmd.Flags().StringVarP(&c.listenAddr, "listen", "l", "", "Address to listen on (default 127.0.0.1:8642)")
	cmd.Flags().BoolVar(&c.allowAllOrigins, "allow-all-origins", false, "Allow requests and host connections from any origin")
	cmd.Flags().BoolVar(&c.allowLocalFiles, "allow-local-files", false, "Allow URL imports to read file:// locations and local paths")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	timeout, _ := cfg.Timeout()

	hist, err := c.openHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	c.log.Infof("Recall list stored in %s", hist.db.Path())

	surface, err := swaggerui.New(cfg.SwaggerUIVersion)
	if err != nil {
		return err
	}

	fetcher := loader.NewHTTPFetcher(timeout, cfg.MaxSpecBytes)
	fetcher.AllowFiles = cfg.AllowLocalFiles

	notes := server.NewNotifications(c.log)
	coord := viewer.New(loader.New(fetcher), hist.store, surface, notes, c.log)

	srv := server.New(server.Config{
		ListenAddr: cfg.ListenAddr,
		AllowAll:   cfg.AllowAllOrigins,
	}, coord, hist.store, surface, notes, c.log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	c.log.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
