package cache

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/report"
)

const (
	// Prefix namespaces every key written by the cache
	Prefix = "football_"
	// TTL is the maximum age of an entry before it is treated as absent
	TTL = time.Hour
)

// entry is the envelope persisted for every key
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Cache is a time-boxed key-value cache on top of a domain.Storage.
// Expired entries are removed lazily when they are read.
type Cache struct {
	log      zerolog.Logger
	store    domain.Storage
	reporter domain.Reporter
	now      func() time.Time
}

type Option func(*Cache)

// WithClock replaces the wall clock used for timestamps and expiry
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithReporter sends swallowed failures to r
func WithReporter(r domain.Reporter) Option {
	return func(c *Cache) {
		c.reporter = r
	}
}

func New(log zerolog.Logger, store domain.Storage, opts ...Option) *Cache {
	c := &Cache{
		log:      log.With().Str("module", "cache").Logger(),
		store:    store,
		reporter: report.Nop{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Set stores data under key, replacing any previous entry.
// Failures are logged and reported but never returned.
func (c *Cache) Set(ctx context.Context, key string, data any) {
	if err := c.set(ctx, key, data); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		c.reporter.Report(ctx, domain.Event{Kind: domain.EventCacheWriteFailed, Module: "cache", Key: key, Err: err})
	}
}

func (c *Cache) set(ctx context.Context, key string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to marshal data")
	}

	b, err := json.Marshal(entry{Data: raw, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return errors.Wrap(err, "failed to marshal entry")
	}

	if err := c.store.SetItem(ctx, Prefix+key, string(b)); err != nil {
		return errors.Wrap(err, "failed to write entry")
	}

	return nil
}

// GetRaw returns the stored data for key exactly as it was written.
// ok is false when the entry is absent, unreadable or expired.
func (c *Cache) GetRaw(ctx context.Context, key string) (json.RawMessage, bool) {
	k := Prefix + key

	s, ok, err := c.store.GetItem(ctx, k)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		c.reporter.Report(ctx, domain.Event{Kind: domain.EventCacheReadFailed, Module: "cache", Key: key, Err: err})
		return nil, false
	}
	if !ok || s == "" {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache entry is not valid json")
		c.reporter.Report(ctx, domain.Event{Kind: domain.EventCacheCorrupt, Module: "cache", Key: key, Err: err})
		return nil, false
	}

	if age := c.now().UnixMilli() - e.Timestamp; age > TTL.Milliseconds() {
		if err := c.store.RemoveItem(ctx, k); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("failed to remove expired entry")
		}
		c.log.Debug().Str("key", key).Int64("age_ms", age).Msg("cache entry expired")
		c.reporter.Report(ctx, domain.Event{Kind: domain.EventCacheExpired, Module: "cache", Key: key})
		return nil, false
	}

	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil, false
	}

	return e.Data, true
}

// Get decodes the stored data for key into dst and reports whether it did.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	raw, ok := c.GetRaw(ctx, key)
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cached data does not match requested type")
		c.reporter.Report(ctx, domain.Event{Kind: domain.EventCacheCorrupt, Module: "cache", Key: key, Err: err})
		return false
	}

	return true
}

// Remove deletes a single entry
func (c *Cache) Remove(ctx context.Context, key string) error {
	if err := c.store.RemoveItem(ctx, Prefix+key); err != nil {
		return errors.Wrapf(err, "failed to remove %s", key)
	}
	return nil
}

// Clear removes every entry in the cache namespace and leaves other keys alone
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.store.GetAllKeys(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache clear failed")
		return errors.Wrap(err, "failed to list keys")
	}

	owned := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, Prefix) {
			owned = append(owned, k)
		}
	}

	if len(owned) == 0 {
		return nil
	}

	if err := c.store.MultiRemove(ctx, owned); err != nil {
		c.log.Warn().Err(err).Msg("cache clear failed")
		return errors.Wrap(err, "failed to remove keys")
	}

	c.log.Debug().Int("removed", len(owned)).Msg("cache cleared")
	return nil
}
