package repository

import (
	"context"

	"github.com/rpggio/cloneai/internal/domain/activity"
)

// KVStore is a string key-value store. Get returns ErrNotFound for a
// missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}
