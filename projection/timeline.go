// Package projection builds local read models from observed events.
// Handles ordering and bounded retention.
// Does not emit events or interact with transports directly.
package projection

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"collabcast/domain/event"
)

// Entry is one observed publication, kept for the debug inspector.
type Entry struct {
	EventID uuid.UUID
	Kind    event.Kind
	At      time.Time
}

var _ event.Handler = (*Timeline)(nil)

// Timeline keeps the most recent published events in order of arrival.
// It hangs off the telemetry worker, so it observes what was actually
// pushed through the pipeline, not what the services intended.
type Timeline struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

func NewTimeline(limit int) *Timeline {
	return &Timeline{limit: limit}
}

func (t *Timeline) Handle(e event.DomainEvent) {
	entry := Entry{Kind: e.Kind(), At: time.Now()}

	switch evt := e.(type) {
	case event.MessageCreated:
		entry.EventID = evt.EventID
		entry.At = evt.At
	case event.MessageDeleted:
		entry.EventID = evt.EventID
		entry.At = evt.At
	case event.TypingStarted:
		entry.EventID = evt.EventID
	case event.PresenceChanged:
		entry.EventID = evt.EventID
		entry.At = evt.At
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if len(t.entries) > t.limit {
		t.entries = t.entries[len(t.entries)-t.limit:]
	}
}

// Recent returns a copy of the retained entries, oldest first.
func (t *Timeline) Recent() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}
