package mcp

import (
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
)

type CloneWebsiteParams struct {
	Description string `json:"description,omitempty" jsonschema:"free text description of the website to build"`
	URL         string `json:"url,omitempty" jsonschema:"address of the website to clone"`
	ImageURL    string `json:"image_url,omitempty" jsonschema:"screenshot as a data URI (data:image/png;base64,...)"`
}

type ListProjectsParams struct{}

type GetProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type DeleteProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type GetStateParams struct{}

type RenderCodeParams struct {
	ID          string `json:"id" jsonschema:"project id"`
	Highlighter string `json:"highlighter,omitempty" jsonschema:"naive or chroma; defaults to the server setting"`
}

type RenderPreviewParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type GetRecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"only entries for this project"`
	Type      string `json:"type,omitempty" jsonschema:"clone_requested, clone_succeeded, clone_failed or project_deleted"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum entries, default 50"`
	Offset    int    `json:"offset,omitempty"`
}

// ProjectSummaryResponse omits code and analysis.
type ProjectSummaryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	HasImage  bool   `json:"has_image"`
	Timestamp int64  `json:"timestamp"`
}

func summarize(p project.Project) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ID:        p.ID,
		Name:      p.Name,
		URL:       p.URL,
		HasImage:  p.ImageURL != "",
		Timestamp: p.Timestamp,
	}
}

type DeleteProjectResponse struct {
	Deleted string `json:"deleted"`
}

type StateResponse struct {
	Phase           coordinator.Phase `json:"phase"`
	Error           string            `json:"error,omitempty"`
	InFlight        bool              `json:"in_flight"`
	View            coordinator.View  `json:"view"`
	ActiveProjectID string            `json:"active_project_id,omitempty"`
	ProjectCount    int               `json:"project_count"`
}

type RenderResponse struct {
	ID          string `json:"id"`
	Highlighter string `json:"highlighter,omitempty"`
	HTML        string `json:"html"`
}

type ActivityResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}
