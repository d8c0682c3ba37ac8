package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/render"
)

// Handler implements the MCP tools on top of the coordinator.
type Handler struct {
	coord       Coordinator
	activity    ActivityService
	highlighter string
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		coord:       services.Coordinator,
		activity:    services.Activity,
		highlighter: services.Highlighter,
	}
}

func (h *Handler) CloneWebsite(ctx context.Context, req CloneWebsiteParams) (any, error) {
	proj, err := h.coord.RequestClone(ctx, coordinator.CloneRequest{
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return proj, nil
}

func (h *Handler) ListProjects(_ context.Context, _ ListProjectsParams) (any, error) {
	projects := h.coord.Projects()
	resp := make([]ProjectSummaryResponse, 0, len(projects))
	for _, proj := range projects {
		resp = append(resp, summarize(proj))
	}
	return resp, nil
}

func (h *Handler) GetProject(_ context.Context, req GetProjectParams) (any, error) {
	proj, err := h.coord.Project(req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return proj, nil
}

func (h *Handler) DeleteProject(ctx context.Context, req DeleteProjectParams) (any, error) {
	if err := h.coord.DeleteProject(ctx, req.ID); err != nil {
		return nil, mapError(err)
	}
	return DeleteProjectResponse{Deleted: req.ID}, nil
}

func (h *Handler) GetState(_ context.Context, _ GetStateParams) (any, error) {
	snap := h.coord.Snapshot()
	resp := StateResponse{
		Phase:        snap.Phase,
		Error:        snap.Error,
		InFlight:     snap.InFlight,
		View:         snap.View,
		ProjectCount: len(snap.Projects),
	}
	if snap.Active != nil {
		resp.ActiveProjectID = snap.Active.ID
	}
	return resp, nil
}

func (h *Handler) RenderCode(_ context.Context, req RenderCodeParams) (any, error) {
	proj, err := h.coord.Project(req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	name := req.Highlighter
	if name == "" {
		name = h.highlighter
	}
	if name != render.HighlighterChroma {
		name = render.HighlighterNaive
	}
	return RenderResponse{
		ID:          proj.ID,
		Highlighter: name,
		HTML:        render.HighlightWith(name, proj.Code),
	}, nil
}

func (h *Handler) RenderPreview(_ context.Context, req RenderPreviewParams) (any, error) {
	proj, err := h.coord.Project(req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return RenderResponse{ID: proj.ID, HTML: render.SandboxDocument(proj.Code)}, nil
}

func (h *Handler) GetRecentActivity(ctx context.Context, req GetRecentActivityParams) (any, error) {
	if h.activity == nil {
		return ActivityResponse{Entries: []activity.ActivityEntry{}}, nil
	}
	opts := activity.ListActivityOptions{Limit: req.Limit, Offset: req.Offset}
	if req.ProjectID != "" {
		opts.ProjectID = &req.ProjectID
	}
	if typ := strings.TrimSpace(req.Type); typ != "" {
		t := activity.ActivityType(typ)
		if !t.Valid() {
			return nil, mapError(fmt.Errorf("unknown activity type %q: %w", typ, activity.ErrInvalidInput))
		}
		opts.ActivityType = &t
	}
	entries, err := h.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, mapError(err)
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	return ActivityResponse{Entries: entries}, nil
}
