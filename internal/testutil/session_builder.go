package testutil

import (
	"time"

	"github.com/sessionhub/sessionhub/core"
)

// SessionBuilder helps construct sessions with fluent chaining for tests.
// Example:
//
//	sess := NewSessionBuilder("bob").Name("Bob").Attr("role", "editor").Build()
type SessionBuilder struct {
	id        string
	name      string
	anonymous bool
	attrs     map[string]string
}

// NewSessionBuilder creates a new builder for a session with the given id.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{id: id, attrs: map[string]string{}}
}

// Name sets the display name (chainable).
func (b *SessionBuilder) Name(n string) *SessionBuilder { b.name = n; return b }

// Anonymous marks the resulting session anonymous (chainable).
func (b *SessionBuilder) Anonymous() *SessionBuilder { b.anonymous = true; return b }

// Attr sets or overwrites an attribute on the resulting session (chainable).
func (b *SessionBuilder) Attr(key, val string) *SessionBuilder { b.attrs[key] = val; return b }

// Build returns the *core.Session.
func (b *SessionBuilder) Build() *core.Session {
	s := &core.Session{ID: b.id, Name: b.name, Anonymous: b.anonymous}
	if len(b.attrs) > 0 {
		s.Attributes = make(map[string]string, len(b.attrs))
		for k, v := range b.attrs {
			s.Attributes[k] = v
		}
	}
	return s
}

// CollectEvents drains up to n events from ch, waiting at most timeout for
// each. It returns whatever arrived in time, so callers assert on length as
// well as content.
func CollectEvents(ch <-chan core.Event, n int, timeout time.Duration) []core.Event {
	var events []core.Event
	for len(events) < n {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-time.After(timeout):
			return events
		}
	}
	return events
}
