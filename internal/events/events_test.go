package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/events"
	"github.com/nfrund/panel/internal/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects events delivered to a subscription.
type recorder struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recorder) handle(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev)
	return nil
}

func (r *recorder) events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.got...)
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rec := &recorder{}
	require.NoError(t, bus.Subscribe(ctx, events.TopicLogin, rec.handle))

	require.NoError(t, bus.Publish(ctx, events.Event{Topic: events.TopicLogin, Email: "root@panel.io"}))
	require.NoError(t, bus.Publish(ctx, events.Event{Topic: events.TopicLogout}))

	require.Eventually(t, func() bool { return len(rec.events()) == 1 }, time.Second, 5*time.Millisecond)
	got := rec.events()[0]
	assert.Equal(t, "root@panel.io", got.Email)
	assert.False(t, got.At.IsZero(), "publish stamps the time")
}

func TestBus_FailingHandlerDoesNotBlock(t *testing.T) {
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var mu sync.Mutex
	calls := 0
	require.NoError(t, bus.Subscribe(ctx, events.TopicMount, func(context.Context, events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("boom")
	}))

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(ctx, events.Event{Topic: events.TopicMount}))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 3
	}, time.Second, 5*time.Millisecond)
}

func TestGuardObserver(t *testing.T) {
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rec := &recorder{}
	require.NoError(t, bus.Subscribe(ctx, events.TopicMount, rec.handle))

	obs := events.NewGuardObserver(bus)
	obs.MountChanged(guard.MountEvent{MountID: "m-1", State: guard.Checking})
	obs.MountChanged(guard.MountEvent{MountID: "m-1", State: guard.Authenticated, User: &authority.UserContext{Email: "root@panel.io"}})
	obs.MountChanged(guard.MountEvent{MountID: "m-2", State: guard.Unauthenticated, Err: guard.ErrSessionRejected})

	require.Eventually(t, func() bool { return len(rec.events()) == 2 }, time.Second, 5*time.Millisecond)
	// GoChannel does not order deliveries across publishes.
	byMount := map[string]events.Event{}
	for _, ev := range rec.events() {
		byMount[ev.MountID] = ev
	}
	assert.Equal(t, "authenticated", byMount["m-1"].State)
	assert.Equal(t, "root@panel.io", byMount["m-1"].Email)
	assert.Equal(t, "unauthenticated", byMount["m-2"].State)
	assert.Equal(t, guard.ErrSessionRejected.Error(), byMount["m-2"].Reason)
}

func TestAudit(t *testing.T) {
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var mu sync.Mutex
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, nil))
	require.NoError(t, events.Audit(ctx, bus, logger))

	require.NoError(t, bus.Publish(ctx, events.Event{Topic: events.TopicLogout, Email: "root@panel.io"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return bytes.Contains(buf.Bytes(), []byte("topic=session.logout"))
	}, time.Second, 5*time.Millisecond)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
