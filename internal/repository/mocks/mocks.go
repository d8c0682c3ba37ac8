package mocks

import (
	"context"

	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/stretchr/testify/mock"
)

// Persister is a mock for project.Persister.
type Persister struct {
	mock.Mock
}

func (m *Persister) Load(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Persister) Save(ctx context.Context, projects []project.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

// KVStore is a mock for repository.KVStore.
type KVStore struct {
	mock.Mock
}

func (m *KVStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Generator is a mock for the coordinator's generation dependency.
type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, prompt, imageDataURI string) (generation.Result, error) {
	args := m.Called(ctx, prompt, imageDataURI)
	if res, ok := args.Get(0).(generation.Result); ok {
		return res, args.Error(1)
	}
	return generation.Result{}, args.Error(1)
}
