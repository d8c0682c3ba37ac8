package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/cloneai/internal/app"
	"github.com/rpggio/cloneai/internal/config"
	"github.com/spf13/cobra"
)

type cli struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile *os.File

	dbPath   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "cloneai",
		Short:         "Generate React + Tailwind clones of websites",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logFile != nil {
				_ = c.logFile.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite database path (overrides CLONEAI_DB_PATH)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides CLONEAI_LOG_LEVEL)")

	cmd.AddCommand(newServeCmd(c))
	cmd.AddCommand(newMCPCmd(c))
	cmd.AddCommand(newCloneCmd(c))
	cmd.AddCommand(newListCmd(c))
	cmd.AddCommand(newDeleteCmd(c))
	return cmd
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.dbPath != "" {
		cfg.DB.Path = c.dbPath
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	c.cfg = cfg

	// Only serve owns stdout; the rest keep it for command output or JSON-RPC.
	logWriter := io.Writer(os.Stderr)
	if cmd.Name() == "serve" {
		logWriter = os.Stdout
	}
	if logPath := os.Getenv("CLONEAI_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			c.logFile = file
			logWriter = fileWriter
		}
	}
	c.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return nil
}

func (c *cli) openApp(ctx context.Context) (*app.App, error) {
	if err := ensureDBDir(c.cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	return app.New(ctx, c.cfg, app.Options{Logger: c.logger})
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
