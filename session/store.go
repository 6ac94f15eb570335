package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/sessionhub/sessionhub/core"
	"github.com/sessionhub/sessionhub/logging"
)

// StoreOptions configure a Store.
type StoreOptions struct {
	// Registry receives the current session (or nil) under
	// core.RegistryUserKey on every publish. Defaults to a no-op.
	Registry core.Registry
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Store holds the current session and the broadcast channel of transition
// events. It is safe for concurrent access; the read-modify-publish sequence
// is guarded by a single mutex so exactly one event is delivered per
// mutation.
//
// Contract:
//   - Current is non-nil iff the most recently published event had
//     StateLogin
//   - Publish is the only path by which the current session changes
//   - every subscriber sees publishes in order, preceded by the replayed
//     most recent event if one exists.
type Store struct {
	mu       sync.RWMutex
	backend  core.Backend
	registry core.Registry
	logger   logging.Logger
	current  *core.Session
	last     *core.Event
	subs     map[*Subscription]struct{}
}

// NewStore constructs an empty store bound to the given backend capability.
func NewStore(backend core.Backend, optFns ...func(o *StoreOptions)) *Store {
	opts := StoreOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{
		backend:  backend,
		registry: opts.Registry,
		logger:   opts.Logger,
		subs:     make(map[*Subscription]struct{}),
	}
}

// Current returns a snapshot of the currently held session, or nil when no
// session is active. The snapshot is a clone; mutating it does not affect the
// store.
func (s *Store) Current() *core.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Last returns the most recently published event, or nil if none has ever
// been published. Used by bridges that replay outside the Subscribe path.
func (s *Store) Last() *core.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	ev := *s.last
	ev.Session = ev.Session.Clone()
	return &ev
}

// Publish atomically sets the current session from the event, caches the
// event for replay and delivers it to all subscribers in order. It then
// mirrors the session (or nil) into the registry under core.RegistryUserKey;
// registry failures are logged, never surfaced, so the broadcast contract is
// independent of the register collaborator.
func (s *Store) Publish(ctx context.Context, ev core.Event) {
	s.mu.Lock()
	s.current = ev.Session.Clone()
	cached := ev
	s.last = &cached
	for sub := range s.subs {
		sub.push(ev)
	}
	s.mu.Unlock()

	if s.registry == nil {
		return
	}
	var value any
	if ev.Session != nil {
		value = ev.Session.Clone()
	}
	if err := s.registry.Set(ctx, core.RegistryUserKey, value); err != nil {
		s.logger.Warn("registry write failed", "key", core.RegistryUserKey, "error", err)
	}
}

// Subscribe registers a new subscriber. If any event has ever been published
// the most recent one is queued for the subscriber before any newer event.
// Close the subscription to release it.
func (s *Store) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := newSubscription(s, s.last)
	s.subs[sub] = struct{}{}
	return sub
}

// ListRemoteLogins enumerates the logins known to the backend. Backend errors
// are wrapped and surfaced directly; nothing is cached.
func (s *Store) ListRemoteLogins(ctx context.Context) ([]core.Session, error) {
	if s.backend == nil {
		return nil, core.ErrNoBackend
	}
	logins, err := s.backend.ListLogins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote logins: %w", err)
	}
	return logins, nil
}

func (s *Store) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

// SubscriberCount reports the number of active subscriptions.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
