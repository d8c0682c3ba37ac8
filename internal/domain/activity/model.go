package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeCloneRequested ActivityType = "clone_requested"
	TypeCloneSucceeded ActivityType = "clone_succeeded"
	TypeCloneFailed    ActivityType = "clone_failed"
	TypeProjectDeleted ActivityType = "project_deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    *string      `json:"project_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeCloneRequested, TypeCloneSucceeded, TypeCloneFailed, TypeProjectDeleted:
		return true
	}
	return false
}
