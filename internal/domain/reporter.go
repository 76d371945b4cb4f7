package domain

import "context"

// EventKind classifies a reported failure or notable event
type EventKind string

const (
	EventCacheReadFailed  EventKind = "cache_read_failed"
	EventCacheWriteFailed EventKind = "cache_write_failed"
	EventCacheCorrupt     EventKind = "cache_corrupt"
	EventCacheExpired     EventKind = "cache_expired"
	EventUpstreamFailed   EventKind = "upstream_failed"
	EventUpstreamRetry    EventKind = "upstream_retry"
	EventInvalidPayload   EventKind = "invalid_payload"
	EventPartialResult    EventKind = "partial_result"
	EventRefreshCompleted EventKind = "refresh_completed"
)

// Event is a structured record of something that was handled without
// failing the caller
type Event struct {
	Kind   EventKind
	Module string
	Key    string
	Err    error
	Fields map[string]any
}

// Reporter receives events. Implementations must be safe for concurrent use.
type Reporter interface {
	Report(ctx context.Context, ev Event)
}
