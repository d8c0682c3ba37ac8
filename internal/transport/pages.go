package transport

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/rpggio/cloneai/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(p project.Project) string {
		return p.CreatedAt().Format("Jan 2, 2006")
	},
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Snapshot     coordinator.Snapshot
	SandboxAttr  string
	CodeHTML     template.HTML
	AnalysisHTML template.HTML
	PreviewDoc   string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	snap := s.coord.Snapshot()
	data := pageData{Snapshot: snap, SandboxAttr: render.SandboxAttr}
	if snap.Active != nil {
		if snap.View == coordinator.ViewPreview {
			data.PreviewDoc = render.SandboxDocument(snap.Active.Code)
		} else {
			data.CodeHTML = template.HTML(render.HighlightWith(s.highlighterFor(""), snap.Active.Code))
			if snap.Active.Analysis != "" {
				data.AnalysisHTML = render.Markdown(snap.Active.Analysis)
			}
		}
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleClone(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	imageURL, err := formImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := coordinator.CloneRequest{
		Description: r.FormValue("description"),
		URL:         strings.TrimSpace(r.FormValue("url")),
		ImageURL:    imageURL,
	}

	if err := s.coord.Submit(r.Context(), req); err != nil {
		s.logger.Info("clone not submitted", "error", err)
	}
	redirectHome(w, r)
}

var errNotImage = errors.New("upload must be an image")

// formImage reads the optional "image" upload as a data URI.
func formImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}
	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", errNotImage
	}
	return generation.EncodeDataURI(mimeType, data), nil
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.coord.NewProject()
	redirectHome(w, r)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if _, err := s.coord.SelectProject(chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.coord.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if err := s.coord.SetView(coordinator.View(chi.URLParam(r, "view"))); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	redirectHome(w, r)
}

// handlePreview serves the sandbox document on its own. The CSP header
// applies the iframe sandbox when the URL is opened directly.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	proj, err := s.coord.Project(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", render.SandboxCSP)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = io.WriteString(w, render.SandboxDocument(proj.Code))
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
