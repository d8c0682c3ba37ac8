package project

import "context"

// Persister loads and saves the whole project collection.
type Persister interface {
	Load(ctx context.Context) ([]Project, error)
	Save(ctx context.Context, projects []Project) error
}
