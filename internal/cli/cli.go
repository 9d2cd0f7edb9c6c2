// Package cli provides the command-line interface for swagger-preview.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/swagger-preview/internal/config"
	"github.com/GabrielNunesIT/swagger-preview/internal/history"
	"github.com/GabrielNunesIT/swagger-preview/internal/kv"
)

// CLI holds the command-line interface configuration.
type CLI struct {
	log     logger.ILogger
	rootCmd *cobra.Command
	in      io.Reader
	out     io.Writer

	configFile string
	dataDir    string

	// serve
	listenAddr      string
	allowAllOrigins bool
	allowLocalFiles bool

	// render
	inputFile  string
	outputFile string
	format     string
	server     string
	label      string
	noHistory  bool
}

// New creates a new CLI instance.
func New(log logger.ILogger) *CLI {
	cli := &CLI{
		log: log,
		in:  os.Stdin,
		out: os.Stdout,
	}

	cli.rootCmd = &cobra.Command{
		Use:           "swagger-preview",
		Short:         "Preview OpenAPI and Swagger documents in Swagger UI",
		Long:          "A local preview daemon and CLI that loads OpenAPI 2/3 documents from a URL, pasted or selected text, optionally rewrites their server, renders them in Swagger UI and keeps a recall list of recent imports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.setupFlags()
	cli.rootCmd.AddCommand(cli.serveCommand(), cli.renderCommand(), cli.historyCommand())

	return cli
}

func (c *CLI) setupFlags() {
	c.rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "Path to the configuration file (default "+config.DefaultFile+" when present)")
	c.rootCmd.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "Directory holding the recall list database")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// loadConfig loads the configuration and applies flags the user set.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = c.dataDir
	}
	if flags.Changed("listen") {
		cfg.ListenAddr = c.listenAddr
	}
	if flags.Changed("allow-all-origins") {
		cfg.AllowAllOrigins = c.allowAllOrigins
	}
	if flags.Changed("allow-local-files") {
		cfg.AllowLocalFiles = c.allowLocalFiles
	}

	return cfg, cfg.Validate()
}

// historyHandle is an open recall list and the database behind it.
type historyHandle struct {
	store *history.Store
	db    *kv.SQLite
}

func (h *historyHandle) Close() {
	h.store.Close()
	_ = h.db.Close()
}

func (c *CLI) openHistory(cfg *config.Config) (*historyHandle, error) {
	path := cfg.HistoryPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := kv.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	return &historyHandle{store: history.New(db, c.log), db: db}, nil
}
