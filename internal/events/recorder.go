package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory. Tests use it to observe what a
// service emitted.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func NewRecorder() *Recorder { return &Recorder{} }

// FailWith makes subsequent Publish calls return err without recording.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events, optionally filtered by type.
func (r *Recorder) Events(eventType ...string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(eventType) == 0 {
		return append([]Event(nil), r.events...)
	}
	var out []Event
	for _, e := range r.events {
		for _, t := range eventType {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
