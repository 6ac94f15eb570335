package session

import (
	"sync"

	"github.com/sessionhub/sessionhub/core"
)

// Subscription is one subscriber's view of the store's broadcast channel.
// Events are delivered in publish order through an unbounded FIFO queue, so a
// slow consumer never blocks publishers or other subscribers. The replayed
// most recent event (if any) is always first.
type Subscription struct {
	store *Store

	mu     sync.Mutex
	queue  []core.Event
	closed bool

	wake chan struct{}
	done chan struct{}
	out  chan core.Event
}

func newSubscription(s *Store, replay *core.Event) *Subscription {
	sub := &Subscription{
		store: s,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
		out:   make(chan core.Event),
	}
	if replay != nil {
		sub.queue = append(sub.queue, *replay)
	}
	go sub.pump()
	return sub
}

// Events returns the channel transition events are delivered on. It is closed
// when the subscription is closed.
func (s *Subscription) Events() <-chan core.Event { return s.out }

// Close detaches the subscription from the store and closes the event
// channel. Queued but undelivered events are discarded. Safe to call more
// than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.store.remove(s)
	close(s.done)
}

func (s *Subscription) push(ev core.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		var ev core.Event
		ok := len(s.queue) > 0
		if ok {
			ev = s.queue[0]
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if ok {
			select {
			case s.out <- ev:
			case <-s.done:
				return
			}
			continue
		}

		select {
		case <-s.wake:
		case <-s.done:
			return
		}
	}
}
