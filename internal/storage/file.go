package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
)

// File is a Storage that keeps all items in one JSON document on disk.
// Every operation re-reads the document so writes made by other handles on
// the same path are seen, and every mutation rewrites it through a temp file
// and rename. Concurrent writers in different processes can still lose an
// update made between the read and the rename; share sqlite instead.
type File struct {
	log  zerolog.Logger
	path string

	mu    sync.Mutex
	items map[string]string
}

// NewFile opens or creates the store at path
func NewFile(log zerolog.Logger, path string) (*File, error) {
	f := &File{
		log:   log.With().Str("module", "storage").Str("type", "file").Logger(),
		path:  path,
		items: make(map[string]string),
	}

	if err := f.load(); err != nil {
		return nil, err
	}

	return f, nil
}

var _ domain.Storage = (*File)(nil)

// load replaces items with the current document; mu must be held
func (f *File) load() error {
	f.items = make(map[string]string)

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read %s", f.path)
	}

	if len(b) == 0 {
		return nil
	}

	items := make(map[string]string)
	if err := json.Unmarshal(b, &items); err != nil {
		// a damaged store is treated as empty and rewritten on the next set
		f.log.Warn().Err(err).Str("path", f.path).Msg("store file is not valid json, starting empty")
		return nil
	}

	f.items = items
	return nil
}

// flush must be called with mu held
func (f *File) flush() error {
	b, err := json.MarshalIndent(f.items, "", "   ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal store")
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to write temp file")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to close temp file")
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to replace %s", f.path)
	}

	f.log.Trace().Str("path", f.path).Int("count", len(f.items)).Msg("flushed store")
	return nil
}

func (f *File) GetItem(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return "", false, err
	}
	v, ok := f.items[key]
	return v, ok, nil
}

func (f *File) SetItem(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	f.items[key] = value
	return f.flush()
}

func (f *File) RemoveItem(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	if _, ok := f.items[key]; !ok {
		return nil
	}
	delete(f.items, key)
	return f.flush()
}

func (f *File) GetAllKeys(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *File) MultiRemove(ctx context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	for _, k := range keys {
		delete(f.items, k)
	}
	return f.flush()
}

func (f *File) Close() error {
	return nil
}
