package guard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/session"
)

// Mount is the state machine for one page mount.
type Mount struct {
	id     string
	g      *Guard
	store  session.Store
	nav    Navigator
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	err      error
	token    session.Token
	user     *authority.UserContext
	disposed bool

	runOnce sync.Once
	done    chan struct{}
}

// Mount creates a mount in the Checking state. Its lifetime ends when ctx
// is done or Unmount is called, whichever comes first.
func (g *Guard) Mount(ctx context.Context, store session.Store, nav Navigator) *Mount {
	mctx, cancel := context.WithCancel(ctx)
	return &Mount{
		id:     uuid.NewString(),
		g:      g,
		store:  store,
		nav:    nav,
		ctx:    mctx,
		cancel: cancel,
		state:  Checking,
		done:   make(chan struct{}),
	}
}

// ID identifies the mount in logs and events.
func (m *Mount) ID() string { return m.id }

// Context is cancelled when the mount ends.
func (m *Mount) Context() context.Context { return m.ctx }

// Run drives the mount to a settled state and returns it. It returns
// Checking when the mount was unmounted before a result arrived. Calling
// Run again returns the current state without repeating the check.
func (m *Mount) Run() State {
	m.runOnce.Do(func() {
		defer close(m.done)
		m.run()
	})
	return m.State()
}

// Start runs the mount on its own goroutine. Use Done to wait for it.
func (m *Mount) Start() {
	go m.Run()
}

// Done is closed once Run has returned.
func (m *Mount) Done() <-chan struct{} { return m.done }

// Unmount ends the mount. Results arriving afterwards are discarded.
func (m *Mount) Unmount() {
	m.mu.Lock()
	m.disposed = true
	m.mu.Unlock()
	m.cancel()
}

// State returns the current state.
func (m *Mount) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns why the mount ended Unauthenticated, or nil.
func (m *Mount) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Token returns the validated token. It is empty unless Authenticated.
func (m *Mount) Token() session.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns what the authority said about the caller, if anything.
func (m *Mount) User() *authority.UserContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Revoke ends an Authenticated mount after a protected fetch failed: the
// store is cleared and the caller is sent to the login page. It reports
// whether the revocation took effect.
func (m *Mount) Revoke(reason error) bool {
	m.mu.Lock()
	if m.goneLocked() || m.state != Authenticated {
		m.mu.Unlock()
		return false
	}
	m.store.Clear()
	m.nav.Navigate(m.g.loginPath)
	m.state = Unauthenticated
	m.err = reason
	m.token = ""
	ev := m.event()
	m.mu.Unlock()

	m.g.logger.Info("session revoked", "mount_id", m.id, "reason", reason)
	m.g.notify(ev)
	return true
}

func (m *Mount) run() {
	m.mu.Lock()
	if m.goneLocked() {
		m.mu.Unlock()
		return
	}
	ev := m.event()
	m.mu.Unlock()
	m.g.notify(ev)

	t, ok := m.store.Get()
	if !ok {
		m.settle(Unauthenticated, ErrNoSession, "", nil, false)
		return
	}

	out := m.validate(t)
	switch out.Kind {
	case authority.Valid:
		m.settle(Authenticated, nil, t, out.User, false)
	case authority.Unreachable:
		m.settle(Unauthenticated, fmt.Errorf("%w: %v", ErrSessionUnverifiable, out.Err), "", nil, true)
	default:
		m.settle(Unauthenticated, ErrSessionRejected, "", nil, true)
	}
}

func (m *Mount) validate(t session.Token) authority.Outcome {
	var out authority.Outcome
	for attempt := 0; attempt <= m.g.retry.Retries; attempt++ {
		if attempt > 0 {
			m.g.logger.Debug("retrying session validation", "mount_id", m.id, "attempt", attempt, "error", out.Err)
			if !sleep(m.ctx, m.g.retry.Backoff) {
				return authority.Outcome{Kind: authority.Unreachable, Err: m.ctx.Err()}
			}
		}
		out = m.g.validator.Validate(m.ctx, t)
		if out.Kind != authority.Unreachable || m.ctx.Err() != nil {
			return out
		}
	}
	return out
}

// settle applies a terminal transition unless the mount is gone.
func (m *Mount) settle(s State, reason error, t session.Token, user *authority.UserContext, clear bool) {
	m.mu.Lock()
	if m.goneLocked() {
		m.mu.Unlock()
		m.g.logger.Debug("discarding result for unmounted page", "mount_id", m.id, "state", s)
		return
	}
	if clear {
		m.store.Clear()
	}
	if s == Unauthenticated {
		m.nav.Navigate(m.g.loginPath)
	}
	m.state = s
	m.err = reason
	m.token = t
	m.user = user
	ev := m.event()
	m.mu.Unlock()

	if reason != nil {
		m.g.logger.Info("mount unauthenticated", "mount_id", m.id, "reason", reason)
	} else {
		m.g.logger.Debug("mount authenticated", "mount_id", m.id)
	}
	m.g.notify(ev)
}

// goneLocked reports whether the mount has ended, either through Unmount
// or because its parent context is done. m.mu must be held.
func (m *Mount) goneLocked() bool {
	return m.disposed || m.ctx.Err() != nil
}

// event must be called with m.mu held.
func (m *Mount) event() MountEvent {
	return MountEvent{MountID: m.id, State: m.state, Err: m.err, User: m.user}
}
