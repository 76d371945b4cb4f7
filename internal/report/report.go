package report

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
)

// Log writes every event to a zerolog logger. Events carrying an error are
// logged at warn level, the rest at debug.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log.With().Str("module", "report").Logger()}
}

func (l *Log) Report(ctx context.Context, ev domain.Event) {
	e := l.log.Debug()
	if ev.Err != nil {
		e = l.log.Warn().Err(ev.Err)
	}

	e.Str("event", string(ev.Kind)).Str("source", ev.Module)
	if ev.Key != "" {
		e.Str("key", ev.Key)
	}
	if len(ev.Fields) > 0 {
		e.Fields(ev.Fields)
	}
	e.Msg("event reported")
}

// Recorder keeps events in memory so they can be inspected
type Recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(ctx context.Context, ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of all recorded events in order
func (r *Recorder) Kinds() []domain.EventKind {
	events := r.Events()
	kinds := make([]domain.EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

// Count returns how many events of the given kind were recorded
func (r *Recorder) Count(kind domain.EventKind) int {
	n := 0
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Multi fans an event out to several reporters
type Multi []domain.Reporter

func (m Multi) Report(ctx context.Context, ev domain.Event) {
	for _, r := range m {
		if r != nil {
			r.Report(ctx, ev)
		}
	}
}

// Nop discards every event
type Nop struct{}

func (Nop) Report(context.Context, domain.Event) {}

var (
	_ domain.Reporter = (*Log)(nil)
	_ domain.Reporter = (*Recorder)(nil)
	_ domain.Reporter = Multi(nil)
	_ domain.Reporter = Nop{}
)
