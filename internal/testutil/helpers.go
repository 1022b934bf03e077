package testutil

import (
	"sync"

	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/rs/zerolog"
)

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// RecordingSubscriber keeps every event it receives, in order.
type RecordingSubscriber struct {
	id     string
	mu     sync.Mutex
	events []events.Event
}

// NewRecordingSubscriber creates a subscriber interested in all event types
func NewRecordingSubscriber(id string) *RecordingSubscriber {
	return &RecordingSubscriber{id: id}
}

func (r *RecordingSubscriber) ID() string                 { return r.id }
func (r *RecordingSubscriber) InterestedIn(_ string) bool { return true }

func (r *RecordingSubscriber) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *RecordingSubscriber) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// Types returns the recorded event types in order
func (r *RecordingSubscriber) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

// OfType returns the recorded events of one type
func (r *RecordingSubscriber) OfType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets everything recorded so far
func (r *RecordingSubscriber) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
