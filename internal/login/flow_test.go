package login_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/login"
	"github.com/nfrund/panel/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthority struct {
	token session.Token
	err   error
	calls int
}

func (a *fakeAuthority) Login(_ context.Context, _ authority.Credentials) (session.Token, error) {
	a.calls++
	return a.token, a.err
}

type countingNavigator struct {
	mu    sync.Mutex
	dests []string
}

func (n *countingNavigator) Navigate(dest string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dests = append(n.dests, dest)
}

func (n *countingNavigator) Destinations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.dests...)
}

var validCreds = authority.Credentials{Email: "root@panel.io", Password: "secret"}

func TestFlow_SubmitAndRedirect(t *testing.T) {
	auth := &fakeAuthority{token: "tok-9"}
	flow := login.NewFlow(auth, login.WithRedirectDelay(30*time.Millisecond))
	store := &session.MemoryStore{}
	nav := &countingNavigator{}

	require.NoError(t, flow.Submit(context.Background(), store, validCreds))
	tok, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, session.Token("tok-9"), tok)

	flow.ScheduleRedirect(nav)
	assert.Empty(t, nav.Destinations(), "navigation waits for the delay")

	require.Eventually(t, func() bool { return len(nav.Destinations()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"/"}, nav.Destinations(), "navigation happens exactly once")
}

func TestFlow_CancelRedirect(t *testing.T) {
	flow := login.NewFlow(&fakeAuthority{token: "tok"}, login.WithRedirectDelay(20*time.Millisecond))
	nav := &countingNavigator{}

	cancel := flow.ScheduleRedirect(nav)
	cancel()
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, nav.Destinations())
}

func TestFlow_SubmitFailures(t *testing.T) {
	t.Run("authority message is kept verbatim", func(t *testing.T) {
		auth := &fakeAuthority{err: &authority.LoginError{Message: "Account locked"}}
		flow := login.NewFlow(auth)
		store := &session.MemoryStore{}

		err := flow.Submit(context.Background(), store, validCreds)

		require.Error(t, err)
		assert.Equal(t, "Account locked", login.Message(err))
		_, ok := store.Get()
		assert.False(t, ok)
		assert.Equal(t, 1, auth.calls, "no retry")
	})

	t.Run("invalid email never reaches the authority", func(t *testing.T) {
		auth := &fakeAuthority{token: "tok"}
		flow := login.NewFlow(auth)

		err := flow.Submit(context.Background(), &session.MemoryStore{}, authority.Credentials{Email: "nope", Password: "x"})

		assert.ErrorIs(t, err, login.ErrInvalidInput)
		assert.Equal(t, "Please enter a valid email address.", login.Message(err))
		assert.Zero(t, auth.calls)
	})

	t.Run("missing password is reported", func(t *testing.T) {
		flow := login.NewFlow(&fakeAuthority{token: "tok"})
		err := flow.Submit(context.Background(), &session.MemoryStore{}, authority.Credentials{Email: "root@panel.io"})
		assert.Equal(t, "Email and password are required.", login.Message(err))
	})

	t.Run("transport failures get a generic message", func(t *testing.T) {
		flow := login.NewFlow(&fakeAuthority{err: errors.New("dial tcp: refused")})
		err := flow.Submit(context.Background(), &session.MemoryStore{}, validCreds)
		assert.Equal(t, "Unable to sign in right now. Please try again.", login.Message(err))
	})
}

func TestFlow_Logout(t *testing.T) {
	flow := login.NewFlow(&fakeAuthority{})
	store := session.NewMemoryStore("tok-1")

	flow.Logout(context.Background(), store)
	_, ok := store.Get()
	assert.False(t, ok)

	// Logging out twice is harmless.
	flow.Logout(context.Background(), store)
	_, ok = store.Get()
	assert.False(t, ok)
}

func TestMessage_Nil(t *testing.T) {
	assert.Empty(t, login.Message(nil))
}
