package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/render"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CodeResponse carries highlighted code.
type CodeResponse struct {
	ID          string `json:"id"`
	Highlighter string `json:"highlighter"`
	HTML        string `json:"html"`
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, coordinator.ErrEmptyRequest), errors.Is(err, coordinator.ErrInvalidView):
		return http.StatusBadRequest
	case errors.Is(err, project.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, coordinator.ErrCloneInFlight):
		return http.StatusConflict
	case errors.Is(err, coordinator.ErrCloneFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func (s *Server) apiState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.coord.Snapshot())
}

func (s *Server) apiListProjects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.coord.Projects())
}

func (s *Server) apiGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.coord.Project(chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) apiDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.coord.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiClone(w http.ResponseWriter, r *http.Request) {
	var req coordinator.CloneRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	proj, err := s.coord.RequestClone(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) apiProjectCode(w http.ResponseWriter, r *http.Request) {
	proj, err := s.coord.Project(chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	name := s.highlighterFor(r.URL.Query().Get("highlighter"))
	writeJSON(w, http.StatusOK, CodeResponse{
		ID:          proj.ID,
		Highlighter: name,
		HTML:        render.HighlightWith(name, proj.Code),
	})
}

func (s *Server) highlighterFor(requested string) string {
	name := requested
	if name == "" {
		name = s.highlighter
	}
	if name != render.HighlighterChroma {
		return render.HighlighterNaive
	}
	return name
}
