package coordinator

import (
	"errors"
	"strings"

	"github.com/rpggio/cloneai/internal/domain/project"
)

// Phase is the coordinator's top-level status.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnalyzing Phase = "analyzing"
	PhaseSuccess   Phase = "success"
	PhaseError     Phase = "error"
)

// View selects how the active project is shown.
type View string

const (
	ViewCode    View = "code"
	ViewPreview View = "preview"
)

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewCode, ViewPreview:
		return View(s), nil
	default:
		return "", ErrInvalidView
	}
}

// FailureMessage is the only failure text shown to users.
const FailureMessage = "Failed to clone the website. Please check your API configuration and try again."

var (
	// ErrEmptyRequest indicates description, url and image are all empty.
	ErrEmptyRequest = errors.New("a description, url or image is required")
	// ErrCloneInFlight indicates another generation has not settled yet.
	ErrCloneInFlight = errors.New("a clone request is already in progress")
	// ErrCloneFailed is returned for any generation or save failure.
	ErrCloneFailed = errors.New(FailureMessage)
	// ErrInvalidView indicates a view other than code or preview.
	ErrInvalidView = errors.New("invalid view")
)

// CloneRequest is the user's intake form.
type CloneRequest struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Empty reports whether there is nothing to clone.
func (r CloneRequest) Empty() bool {
	return strings.TrimSpace(r.Description) == "" &&
		strings.TrimSpace(r.ImageURL) == "" &&
		strings.TrimSpace(r.URL) == ""
}

// Prompt combines the description with the url suffix.
func (r CloneRequest) Prompt() string {
	if r.URL == "" {
		return r.Description
	}
	return r.Description + " URL: " + r.URL
}

// Snapshot is a copy of the coordinator state.
type Snapshot struct {
	Phase    Phase             `json:"phase"`
	Error    string            `json:"error,omitempty"`
	InFlight bool              `json:"in_flight"`
	Active   *project.Project  `json:"active,omitempty"`
	View     View              `json:"view"`
	Projects []project.Project `json:"projects"`
}
