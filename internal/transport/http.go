package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/project"
)

// DefaultMaxUpload caps request bodies, screenshots included.
const DefaultMaxUpload = 20 << 20

// Coordinator defines the state operations the HTTP surface drives.
type Coordinator interface {
	Submit(ctx context.Context, req coordinator.CloneRequest) error
	RequestClone(ctx context.Context, req coordinator.CloneRequest) (*project.Project, error)
	SelectProject(id string) (project.Project, error)
	DeleteProject(ctx context.Context, id string) error
	NewProject()
	SetView(v coordinator.View) error
	Project(id string) (project.Project, error)
	Projects() []project.Project
	Snapshot() coordinator.Snapshot
}

// Options wires the HTTP server.
type Options struct {
	Coordinator Coordinator
	// Hub serves /events when set.
	Hub *Hub
	// MCP is mounted at /mcp when set.
	MCP http.Handler
	// AuthToken protects /api and /mcp when non-empty.
	AuthToken   string
	Highlighter string
	MaxUpload   int64
	Logger      *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	coord       Coordinator
	hub         *Hub
	highlighter string
	maxUpload   int64
	logger      *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	srv := &Server{
		coord:       opts.Coordinator,
		hub:         opts.Hub,
		highlighter: opts.Highlighter,
		maxUpload:   opts.MaxUpload,
		logger:      opts.Logger,
	}
	if srv.maxUpload <= 0 {
		srv.maxUpload = DefaultMaxUpload
	}
	if srv.logger == nil {
		srv.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Get("/", srv.handleIndex)
	r.Post("/clone", srv.handleClone)
	r.Post("/new", srv.handleNew)
	r.Post("/projects/{id}/select", srv.handleSelect)
	r.Post("/projects/{id}/delete", srv.handleDelete)
	r.Post("/view/{view}", srv.handleView)
	r.Get("/projects/{id}/preview", srv.handlePreview)
	if srv.hub != nil {
		r.Get("/events", srv.handleEvents)
	}

	auth := AuthMiddleware(opts.AuthToken)
	r.Route("/api", func(r chi.Router) {
		r.Use(auth)
		r.Get("/state", srv.apiState)
		r.Get("/projects", srv.apiListProjects)
		r.Post("/clone", srv.apiClone)
		r.Get("/projects/{id}", srv.apiGetProject)
		r.Delete("/projects/{id}", srv.apiDeleteProject)
		r.Get("/projects/{id}/code", srv.apiProjectCode)
	})
	if opts.MCP != nil {
		r.With(auth).Handle("/mcp", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, s.coord.Snapshot())
}
