// Package app assembles the storage, generation and coordinator stack
// shared by the CLI commands, the servers and the end-to-end tests.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/cloneai/internal/config"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/rpggio/cloneai/internal/mcp"
	"github.com/rpggio/cloneai/internal/persistence"
	"github.com/rpggio/cloneai/internal/sqlite"
	"github.com/rpggio/cloneai/internal/transport"
)

// Options overrides parts of the stack.
type Options struct {
	// Generator replaces the Gemini-backed client.
	Generator coordinator.Generator
	Logger    *slog.Logger
}

// App holds the wired services.
type App struct {
	Config      config.Config
	DB          *sqlite.DB
	Store       *project.Store
	Activity    *activity.Service
	Coordinator *coordinator.Coordinator
	Hub         *transport.Hub
	Logger      *slog.Logger
}

// New opens the database, runs migrations and loads stored projects.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	gen := opts.Generator
	if gen == nil {
		model, err := generation.NewModel(ctx, cfg.Generation.APIKey)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if cfg.Generation.APIKey == "" {
			logger.Warn("no generation api key configured; clone requests will fail")
		}
		gen = generation.NewClient(model, generation.Options{
			TextModel:       cfg.Generation.TextModel,
			ImageModel:      cfg.Generation.ImageModel,
			DetectImageMIME: cfg.Generation.DetectImageMIME,
		}, logger)
	}

	store := project.NewStore(persistence.NewAdapter(sqlite.NewKVStore(db)), logger)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	hub := transport.NewHub(logger)

	coord, err := coordinator.New(ctx, coordinator.Config{
		Store:     store,
		Generator: gen,
		Activity:  activitySvc,
		Notifier:  hub,
		Timeout:   cfg.Generation.Timeout,
		Logger:    logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		Config:      cfg,
		DB:          db,
		Store:       store,
		Activity:    activitySvc,
		Coordinator: coord,
		Hub:         hub,
		Logger:      logger,
	}, nil
}

// MCPServer builds the MCP server for a transport mode ("stdio" or "http").
func (a *App) MCPServer(mode string) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Coordinator: a.Coordinator,
			Activity:    a.Activity,
			Highlighter: a.Config.Render.Highlighter,
		},
		AuthToken:     a.Config.Auth.Token,
		TransportMode: mode,
		Logger:        a.Logger,
	})
}

// Handler builds the HTTP router with the MCP endpoint mounted.
func (a *App) Handler() http.Handler {
	return transport.NewServer(transport.Options{
		Coordinator: a.Coordinator,
		Hub:         a.Hub,
		MCP:         mcp.NewHTTPHandler(a.MCPServer("http")),
		AuthToken:   a.Config.Auth.Token,
		Highlighter: a.Config.Render.Highlighter,
		Logger:      a.Logger,
	})
}

// Close disconnects event clients and closes the database.
func (a *App) Close() error {
	a.Hub.Close()
	return a.DB.Close()
}
