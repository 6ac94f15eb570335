package session

import (
	"context"

	"github.com/sessionhub/sessionhub/core"
	"github.com/sessionhub/sessionhub/logging"
)

// ManagerOptions configure a Manager.
type ManagerOptions struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Manager mediates every session-changing operation. Each operation performs
// one backend call, publishes at most one transition event on the store and
// then returns the resolved session or the propagated error; the event is
// always published before the call returns. Operations never retry and never
// publish twice.
//
// Concurrent conflicting operations are treated as client error: the store's
// last publish wins, there is no serialization across distinct invocations.
type Manager struct {
	store   *Store
	backend core.Backend
	logger  logging.Logger
}

// NewManager constructs a Manager publishing into store and calling backend.
func NewManager(store *Store, backend core.Backend, optFns ...func(o *ManagerOptions)) *Manager {
	opts := ManagerOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{store: store, backend: backend, logger: opts.Logger}
}

// ResumeDefault resumes the backend's default (most recent) login. On success
// a login event is published and the session returned. On failure the error
// is returned without any publication: a missing session to resume is an
// expected startup condition and the caller is responsible for falling back
// to StartAnonymous. Bootstrap sequences rely on this asymmetry.
func (m *Manager) ResumeDefault(ctx context.Context) (*core.Session, error) {
	if m.backend == nil {
		return nil, core.ErrNoBackend
	}
	sess, err := m.backend.Resume(ctx, core.Hint{})
	if err != nil {
		m.logger.Debug("default resume failed", "error", err)
		return nil, err
	}
	m.store.Publish(ctx, core.NewLoginEvent(sess))
	m.logger.Info("session resumed", "user_id", sess.ID)
	return sess, nil
}

// StartAnonymous logs in as the shared anonymous user. The resolved session
// is marked Anonymous before publication. On failure an error event is
// published and the error returned.
func (m *Manager) StartAnonymous(ctx context.Context) (*core.Session, error) {
	if m.backend == nil {
		return nil, core.ErrNoBackend
	}
	sess, err := m.backend.Login(ctx, core.Credentials{ID: core.AnonymousUserID})
	if err != nil {
		m.store.Publish(ctx, core.NewErrorEvent())
		m.logger.Warn("anonymous login failed", "error", err)
		return nil, err
	}
	sess = sess.Clone()
	sess.Anonymous = true
	m.store.Publish(ctx, core.NewLoginEvent(sess))
	m.logger.Info("anonymous session started", "user_id", sess.ID)
	return sess, nil
}

// ResumeAs resumes the session of a specific user. On failure an error event
// is published and the error returned.
func (m *Manager) ResumeAs(ctx context.Context, userID string) (*core.Session, error) {
	if m.backend == nil {
		return nil, core.ErrNoBackend
	}
	sess, err := m.backend.Resume(ctx, core.Hint{ID: userID})
	if err != nil {
		m.store.Publish(ctx, core.NewErrorEvent())
		m.logger.Warn("resume failed", "user_id", userID, "error", err)
		return nil, err
	}
	m.store.Publish(ctx, core.NewLoginEvent(sess))
	m.logger.Info("session resumed", "user_id", sess.ID)
	return sess, nil
}

// StartSession logs in with explicit credentials. On failure a notallowed
// event is published and the error returned. All login failures map to
// notallowed; observers cannot distinguish wrong credentials from an
// unreachable backend.
func (m *Manager) StartSession(ctx context.Context, userID, password string) (*core.Session, error) {
	if m.backend == nil {
		return nil, core.ErrNoBackend
	}
	sess, err := m.backend.Login(ctx, core.Credentials{ID: userID, Password: password})
	if err != nil {
		m.store.Publish(ctx, core.NewNotAllowedEvent())
		m.logger.Warn("login rejected", "user_id", userID, "error", err)
		return nil, err
	}
	m.store.Publish(ctx, core.NewLoginEvent(sess))
	m.logger.Info("session started", "user_id", sess.ID)
	return sess, nil
}

// StopSession logs out. userID may be empty to let the backend pick the
// current login. The session is cleared and a logout event published whether
// or not the remote call succeeded; logout is always effective locally. A
// backend error is still returned to the caller.
func (m *Manager) StopSession(ctx context.Context, userID string) error {
	if m.backend == nil {
		return core.ErrNoBackend
	}
	err := m.backend.Logout(ctx, core.Hint{ID: userID})
	m.store.Publish(ctx, core.NewLogoutEvent())
	if err != nil {
		m.logger.Warn("remote logout failed", "user_id", userID, "error", err)
		return err
	}
	m.logger.Info("session stopped", "user_id", userID)
	return nil
}
