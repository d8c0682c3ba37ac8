package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Store keeps projects newest first and writes the full collection
// through its Persister after every mutation.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	projects  []Project
	logger    *slog.Logger
}

// NewStore creates an empty store backed by persister.
func NewStore(persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{persister: persister, logger: logger}
}

// Load replaces the in-memory collection with the persisted one.
// On error the current contents are kept.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]Project(nil), loaded...)
	s.logger.Debug("projects loaded", "count", len(s.projects))
	return nil
}

// Insert prepends proj and persists. If the save fails the store is unchanged.
func (s *Store) Insert(ctx context.Context, proj Project) error {
	if strings.TrimSpace(proj.ID) == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(proj.ID) >= 0 {
		return ErrDuplicateID
	}

	updated := make([]Project, 0, len(s.projects)+1)
	updated = append(updated, proj)
	updated = append(updated, s.projects...)

	if err := s.persister.Save(ctx, updated); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	s.projects = updated
	return nil
}

// Remove deletes the project with id and persists. It returns the removed
// project. If the save fails the store is unchanged.
func (s *Store) Remove(ctx context.Context, id string) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Project{}, ErrProjectNotFound
	}
	removed := s.projects[idx]

	updated := make([]Project, 0, len(s.projects)-1)
	updated = append(updated, s.projects[:idx]...)
	updated = append(updated, s.projects[idx+1:]...)

	if err := s.persister.Save(ctx, updated); err != nil {
		return Project{}, fmt.Errorf("saving projects: %w", err)
	}
	s.projects = updated
	return removed, nil
}

// Get fetches a project by ID.
func (s *Store) Get(id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Project{}, ErrProjectNotFound
	}
	return s.projects[idx], nil
}

// List returns a copy of the collection, newest first.
func (s *Store) List() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Project(nil), s.projects...)
}

// Len reports the number of stored projects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *Store) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}
