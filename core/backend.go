package core

import "context"

// Credentials identify a user to the backend's login operation. An empty
// password together with AnonymousUserID requests the shared anonymous
// identity.
type Credentials struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// Hint optionally narrows a resume or logout to a specific user id. The zero
// value lets the backend pick its default (most recently used) login.
type Hint struct {
	ID string `json:"id,omitempty"`
}

// Backend is the opaque remote authentication capability this module depends
// on but does not implement. Every method is a single round trip; any
// rejection surfaces as a non-nil error carrying the backend-defined cause.
type Backend interface {
	// Login authenticates the given credentials and returns the resolved session.
	Login(ctx context.Context, creds Credentials) (*Session, error)
	// Resume re-establishes a previously authenticated session.
	Resume(ctx context.Context, hint Hint) (*Session, error)
	// Logout invalidates the remote session. A failed logout still clears
	// local state; see session.Manager.
	Logout(ctx context.Context, hint Hint) error
	// ListLogins enumerates the logins known to the backend.
	ListLogins(ctx context.Context) ([]Session, error)
}
