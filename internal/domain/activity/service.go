package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultLimit caps GetRecentActivity when no limit is given.
const DefaultLimit = 50

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Record logs an entry and only reports failures to the logger. Activity
// is diagnostic, so callers never fail because of it.
func (s *Service) Record(ctx context.Context, typ ActivityType, projectID, summary, details string) {
	entry := &ActivityEntry{
		ActivityType: typ,
		Summary:      summary,
		Details:      details,
	}
	if projectID != "" {
		entry.ProjectID = &projectID
	}
	if err := s.LogActivity(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record activity", "type", typ, "error", err)
	}
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return s.repo.List(ctx, opts)
}
