// File: fake/sink.go
// Package fake provides test doubles for hioload-pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fake

import (
	"sync"

	"github.com/momentics/hioload-pool/api"
)

// Sink records every emitted event for inspection in tests.
type Sink struct {
	mu     sync.Mutex
	events []api.Event
}

// NewSink creates an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

// Emit implements api.Sink.
func (s *Sink) Emit(ev api.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (s *Sink) Events() []api.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Event, len(s.events))
	copy(out, s.events)
	return out
}

// CountOf returns how many recorded events share the given name.
func (s *Sink) CountOf(name string) int {
	n := 0
	for _, ev := range s.Events() {
		if ev.EventName() == name {
			n++
		}
	}
	return n
}
