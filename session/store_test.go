package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionhub/sessionhub/core"
	"github.com/sessionhub/sessionhub/internal/testutil"
)

const waitTimeout = 2 * time.Second

func TestStore_CurrentInitiallyNil(t *testing.T) {
	s := NewStore(nil)
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Last())
}

func TestStore_PublishSetsCurrent(t *testing.T) {
	s := NewStore(nil)
	sess := testutil.NewSessionBuilder("bob").Name("Bob").Build()

	s.Publish(context.Background(), core.NewLoginEvent(sess))

	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "bob", cur.ID)

	s.Publish(context.Background(), core.NewLogoutEvent())
	assert.Nil(t, s.Current())
}

func TestStore_CurrentIsSnapshot(t *testing.T) {
	s := NewStore(nil)
	sess := testutil.NewSessionBuilder("bob").Attr("role", "editor").Build()
	s.Publish(context.Background(), core.NewLoginEvent(sess))

	cur := s.Current()
	cur.ID = "mallory"
	cur.Attributes["role"] = "admin"

	again := s.Current()
	assert.Equal(t, "bob", again.ID)
	assert.Equal(t, "editor", again.Attributes["role"])
}

func TestStore_SubscribeReplaysLastEvent(t *testing.T) {
	s := NewStore(nil)
	sess := testutil.NewSessionBuilder("bob").Build()
	s.Publish(context.Background(), core.NewLoginEvent(sess))

	// Two subscribers attaching at different times after the same publish
	// both receive it.
	first := s.Subscribe()
	defer first.Close()
	second := s.Subscribe()
	defer second.Close()

	for _, sub := range []*Subscription{first, second} {
		events := testutil.CollectEvents(sub.Events(), 1, waitTimeout)
		require.Len(t, events, 1)
		assert.Equal(t, core.StateLogin, events[0].State)
		require.NotNil(t, events[0].Session)
		assert.Equal(t, "bob", events[0].Session.ID)
	}
}

func TestStore_SubscribeBeforeAnyPublish(t *testing.T) {
	s := NewStore(nil)
	sub := s.Subscribe()
	defer sub.Close()

	events := testutil.CollectEvents(sub.Events(), 1, 100*time.Millisecond)
	assert.Empty(t, events, "no replay without a prior publish")
}

func TestStore_ReplayPrecedesNewerEvents(t *testing.T) {
	s := NewStore(nil)
	s.Publish(context.Background(), core.NewLoginEvent(testutil.NewSessionBuilder("bob").Build()))

	sub := s.Subscribe()
	defer sub.Close()
	s.Publish(context.Background(), core.NewLogoutEvent())

	events := testutil.CollectEvents(sub.Events(), 2, waitTimeout)
	require.Len(t, events, 2)
	assert.Equal(t, core.StateLogin, events[0].State)
	assert.Equal(t, core.StateLogout, events[1].State)
}

func TestStore_DeliveryInPublishOrder(t *testing.T) {
	s := NewStore(nil)
	sub := s.Subscribe()
	defer sub.Close()

	const n = 50
	for i := 0; i < n; i++ {
		s.Publish(context.Background(), core.NewLoginEvent(testutil.NewSessionBuilder(fmt.Sprintf("u%03d", i)).Build()))
	}

	events := testutil.CollectEvents(sub.Events(), n, waitTimeout)
	require.Len(t, events, n)
	for i, ev := range events {
		assert.Equal(t, fmt.Sprintf("u%03d", i), ev.Session.ID)
	}
}

func TestStore_AllSubscribersReceiveEveryEvent(t *testing.T) {
	s := NewStore(nil)
	subs := []*Subscription{s.Subscribe(), s.Subscribe(), s.Subscribe()}
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()

	s.Publish(context.Background(), core.NewLoginEvent(testutil.NewSessionBuilder("bob").Build()))
	s.Publish(context.Background(), core.NewLogoutEvent())

	for _, sub := range subs {
		events := testutil.CollectEvents(sub.Events(), 2, waitTimeout)
		require.Len(t, events, 2)
		assert.Equal(t, core.StateLogin, events[0].State)
		assert.Equal(t, core.StateLogout, events[1].State)
	}
}

func TestStore_CloseDetachesSubscriber(t *testing.T) {
	s := NewStore(nil)
	sub := s.Subscribe()
	require.Equal(t, 1, s.SubscriberCount())

	sub.Close()
	sub.Close() // idempotent

	assert.Equal(t, 0, s.SubscriberCount())

	// Channel eventually closes.
	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(waitTimeout):
		t.Fatal("event channel not closed after Close")
	}

	// Publishing after close must not panic or deliver.
	s.Publish(context.Background(), core.NewLogoutEvent())
}

func TestStore_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	s := NewStore(nil)
	sub := s.Subscribe() // never consumed until the end
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			s.Publish(context.Background(), core.NewLogoutEvent())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("publish blocked on a slow subscriber")
	}

	events := testutil.CollectEvents(sub.Events(), 500, waitTimeout)
	assert.Len(t, events, 500)
}

func TestStore_RegistryMirroring(t *testing.T) {
	reg := &recordingRegistry{}
	s := NewStore(nil, func(o *StoreOptions) { o.Registry = reg })

	sess := testutil.NewSessionBuilder("bob").Build()
	s.Publish(context.Background(), core.NewLoginEvent(sess))
	s.Publish(context.Background(), core.NewLogoutEvent())

	require.Len(t, reg.writes, 2)
	assert.Equal(t, core.RegistryUserKey, reg.writes[0].key)
	require.IsType(t, (*core.Session)(nil), reg.writes[0].value)
	assert.Equal(t, "bob", reg.writes[0].value.(*core.Session).ID)
	assert.Nil(t, reg.writes[1].value)
}

func TestStore_RegistryFailureDoesNotBreakPublish(t *testing.T) {
	reg := &recordingRegistry{err: errors.New("register down")}
	s := NewStore(nil, func(o *StoreOptions) { o.Registry = reg })
	sub := s.Subscribe()
	defer sub.Close()

	s.Publish(context.Background(), core.NewLoginEvent(testutil.NewSessionBuilder("bob").Build()))

	events := testutil.CollectEvents(sub.Events(), 1, waitTimeout)
	require.Len(t, events, 1)
	require.NotNil(t, s.Current())
}

func TestStore_ListRemoteLogins(t *testing.T) {
	backend := &testutil.FakeBackend{
		ListLoginsFunc: func(ctx context.Context) ([]core.Session, error) {
			return []core.Session{{ID: "bob"}, {ID: "alice"}}, nil
		},
	}
	s := NewStore(backend)

	logins, err := s.ListRemoteLogins(context.Background())
	require.NoError(t, err)
	require.Len(t, logins, 2)
	assert.Equal(t, "bob", logins[0].ID)
}

func TestStore_ListRemoteLoginsWrapsBackendError(t *testing.T) {
	backendErr := errors.New("unreachable")
	backend := &testutil.FakeBackend{
		ListLoginsFunc: func(ctx context.Context) ([]core.Session, error) {
			return nil, backendErr
		},
	}
	s := NewStore(backend)

	_, err := s.ListRemoteLogins(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
}

func TestStore_ListRemoteLoginsWithoutBackend(t *testing.T) {
	s := NewStore(nil)
	_, err := s.ListRemoteLogins(context.Background())
	assert.ErrorIs(t, err, core.ErrNoBackend)
}

func TestStore_ConcurrentPublishAndSubscribe(t *testing.T) {
	s := NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Publish(context.Background(), core.NewLoginEvent(testutil.NewSessionBuilder("u").Build()))
				sub := s.Subscribe()
				sub.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, s.SubscriberCount())
	require.NotNil(t, s.Current())
}

type registryWrite struct {
	key   string
	value any
}

type recordingRegistry struct {
	mu     sync.Mutex
	writes []registryWrite
	err    error
}

func (r *recordingRegistry) Set(_ context.Context, key string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, registryWrite{key: key, value: value})
	return r.err
}
