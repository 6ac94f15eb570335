package core

import (
	"time"

	"github.com/google/uuid"
)

// Event is the broadcast record of a single session transition. After
// emission it should be treated as immutable. Session is non-nil iff State is
// StateLogin; every other state clears the current session.
type Event struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Session   *Session  `json:"session,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event for the given state carrying an optional session.
// Prefer the state-specific constructors for common transitions.
func NewEvent(state State, session *Session) Event {
	return Event{
		ID:        NewID(),
		State:     state,
		Session:   session,
		Timestamp: time.Now().UTC(),
	}
}

// NewLoginEvent records that the given session became current.
func NewLoginEvent(session *Session) Event { return NewEvent(StateLogin, session) }

// NewLogoutEvent records that the current session was cleared.
func NewLogoutEvent() Event { return NewEvent(StateLogout, nil) }

// NewErrorEvent records a definitive failure of an anonymous login or resume.
func NewErrorEvent() Event { return NewEvent(StateError, nil) }

// NewNotAllowedEvent records a rejected credentialed login.
func NewNotAllowedEvent() Event { return NewEvent(StateNotAllowed, nil) }

// NewID generates a new unique identifier for events.
func NewID() string { return uuid.NewString() }
