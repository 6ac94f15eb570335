// Package sessionhub provides a high-level façade over the session store and
// operation manager, tracking the lifecycle of a single authenticated session
// against a remote collaboration backend. Most applications interact with
// this package by:
//  1. Creating a Hub via New() with a core.Backend implementation (see
//     backend/rest for the HTTP one)
//  2. Bootstrapping a session: ResumeDefault, falling back to StartAnonymous
//  3. Subscribing to transition events for UI updates
//
// The façade delegates to session.Store and session.Manager while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// registry (registry/redisregistry) and a structured logger.
package sessionhub

import (
	"context"

	"github.com/sessionhub/sessionhub/core"
	"github.com/sessionhub/sessionhub/logging"
	"github.com/sessionhub/sessionhub/registry"
	"github.com/sessionhub/sessionhub/session"
)

// Options configures the Hub instance.
type Options struct {
	// Registry receives the current session under core.RegistryUserKey on
	// every transition. Defaults to an in-memory register.
	Registry core.Registry

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Hub is the high-level façade aggregating the session store and manager.
type Hub struct {
	opts    Options
	store   *session.Store
	manager *session.Manager
}

// New creates a new Hub bound to the given backend capability. Any unset
// collaborator is initialized with an in-memory implementation.
func New(backend core.Backend, optFns ...func(o *Options)) *Hub {
	opts := Options{
		Registry: registry.NewInMemory(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	store := session.NewStore(backend, func(o *session.StoreOptions) {
		o.Registry = opts.Registry
		o.Logger = opts.Logger
	})
	manager := session.NewManager(store, backend, func(o *session.ManagerOptions) {
		o.Logger = opts.Logger
	})

	return &Hub{opts: opts, store: store, manager: manager}
}

// Store exposes the underlying session store for bridges (see package ws).
func (h *Hub) Store() *session.Store { return h.store }

// Current returns a snapshot of the active session, or nil.
func (h *Hub) Current() *core.Session { return h.store.Current() }

// Subscribe returns a new subscription to session transition events; the most
// recent event, if any, is replayed first.
func (h *Hub) Subscribe() *session.Subscription { return h.store.Subscribe() }

// ListRemoteLogins enumerates the logins known to the backend.
func (h *Hub) ListRemoteLogins(ctx context.Context) ([]core.Session, error) {
	return h.store.ListRemoteLogins(ctx)
}

// ResumeDefault resumes the backend's default login; see session.Manager.
func (h *Hub) ResumeDefault(ctx context.Context) (*core.Session, error) {
	return h.manager.ResumeDefault(ctx)
}

// StartAnonymous logs in as the shared anonymous user; see session.Manager.
func (h *Hub) StartAnonymous(ctx context.Context) (*core.Session, error) {
	return h.manager.StartAnonymous(ctx)
}

// ResumeAs resumes the session of a specific user; see session.Manager.
func (h *Hub) ResumeAs(ctx context.Context, userID string) (*core.Session, error) {
	return h.manager.ResumeAs(ctx, userID)
}

// StartSession logs in with explicit credentials; see session.Manager.
func (h *Hub) StartSession(ctx context.Context, userID, password string) (*core.Session, error) {
	return h.manager.StartSession(ctx, userID, password)
}

// StopSession logs out, clearing the session locally regardless of the remote
// outcome; see session.Manager.
func (h *Hub) StopSession(ctx context.Context, userID string) error {
	return h.manager.StopSession(ctx, userID)
}
