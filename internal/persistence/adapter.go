// Package persistence stores the project list as one JSON value in a
// key-value store.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/repository"
)

// ProjectsKey is the fixed key holding the serialized project list.
const ProjectsKey = "cloneai_projects"

// ErrCorrupt indicates the stored value is not a JSON array of projects.
var ErrCorrupt = errors.New("stored projects are corrupt")

// Adapter implements project.Persister on top of a repository.KVStore.
type Adapter struct {
	kv  repository.KVStore
	key string
}

// NewAdapter creates an adapter writing under ProjectsKey.
func NewAdapter(kv repository.KVStore) *Adapter {
	return &Adapter{kv: kv, key: ProjectsKey}
}

// Load returns the stored projects. A missing or empty value yields an
// empty slice; an unparsable one yields an error wrapping ErrCorrupt.
func (a *Adapter) Load(ctx context.Context) ([]project.Project, error) {
	raw, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, repository.ErrNotFound) {
		return []project.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", a.key, err)
	}
	if strings.TrimSpace(raw) == "" {
		return []project.Project{}, nil
	}

	var projects []project.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return projects, nil
}

// Save overwrites the stored value with the full collection.
func (a *Adapter) Save(ctx context.Context, projects []project.Project) error {
	if projects == nil {
		projects = []project.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}
	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", a.key, err)
	}
	return nil
}
