package domain

import "context"

// Storage is the minimal persistent key-value contract the cache is built on.
// GetItem reports a missing key with ok == false and a nil error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	GetAllKeys(ctx context.Context) ([]string, error)
	MultiRemove(ctx context.Context, keys []string) error
	Close() error
}
