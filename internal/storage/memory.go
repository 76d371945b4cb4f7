package storage

import (
	"context"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/varoOP/matchday/internal/domain"
)

// Memory is a process-local Storage backed by a concurrent map
type Memory struct {
	items *xsync.MapOf[string, string]
}

func NewMemory() *Memory {
	return &Memory{items: xsync.NewMapOf[string, string]()}
}

var _ domain.Storage = (*Memory)(nil)

func (m *Memory) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.items.Load(key)
	return v, ok, nil
}

func (m *Memory) SetItem(ctx context.Context, key, value string) error {
	m.items.Store(key, value)
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// GetAllKeys returns the keys in lexical order
func (m *Memory) GetAllKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, m.items.Size())
	m.items.Range(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) MultiRemove(ctx context.Context, keys []string) error {
	for _, k := range keys {
		m.items.Delete(k)
	}
	return nil
}

// Len returns the number of stored items
func (m *Memory) Len() int {
	return m.items.Size()
}

func (m *Memory) Close() error {
	return nil
}
