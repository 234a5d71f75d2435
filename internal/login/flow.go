// Package login exchanges credentials for a session token and schedules
// the move into the protected area.
package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/events"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/session"
)

const (
	// RootPath is the protected-area root reached after a login.
	RootPath = "/"
	// DefaultRedirectDelay leaves the success message on screen before moving on.
	DefaultRedirectDelay = 1500 * time.Millisecond
)

// ErrInvalidInput wraps credential validation failures.
var ErrInvalidInput = errors.New("invalid login input")

// Authority issues tokens.
type Authority interface {
	Login(ctx context.Context, creds authority.Credentials) (session.Token, error)
}

// Flow runs logins and logouts against a session.Store.
type Flow struct {
	auth      Authority
	validator *Validator
	delay     time.Duration
	pub       events.Publisher
}

// Option configures a Flow.
type Option func(*Flow)

// WithRedirectDelay overrides DefaultRedirectDelay.
func WithRedirectDelay(d time.Duration) Option {
	return func(f *Flow) {
		f.delay = d
	}
}

// WithPublisher publishes login and logout events.
func WithPublisher(pub events.Publisher) Option {
	return func(f *Flow) {
		f.pub = pub
	}
}

// WithValidator shares a validator, typically the one registered on echo.
func WithValidator(v *Validator) Option {
	return func(f *Flow) {
		f.validator = v
	}
}

// NewFlow creates a Flow.
func NewFlow(auth Authority, opts ...Option) *Flow {
	f := &Flow{auth: auth, delay: DefaultRedirectDelay}
	for _, opt := range opts {
		opt(f)
	}
	if f.validator == nil {
		f.validator = NewValidator()
	}
	return f
}

// RedirectDelay is how long the success message stays before navigation.
func (f *Flow) RedirectDelay() time.Duration {
	return f.delay
}

// Submit validates creds, asks the authority for a token and stores it.
// There is no retry: the caller shows Message(err) and lets the user try again.
func (f *Flow) Submit(ctx context.Context, store session.Store, creds authority.Credentials) error {
	if err := f.validator.Validate(&creds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t, err := f.auth.Login(ctx, creds)
	if err != nil {
		slog.Warn("Failed login attempt", "email", creds.Email, "error", err)
		return err
	}
	store.Set(t)
	f.publish(ctx, events.Event{Topic: events.TopicLogin, Email: creds.Email})
	return nil
}

// ScheduleRedirect navigates to RootPath once, after the redirect delay.
// The returned cancel stops a navigation that has not happened yet.
func (f *Flow) ScheduleRedirect(nav guard.Navigator) (cancel func()) {
	var once sync.Once
	fire := func() {
		once.Do(func() { nav.Navigate(RootPath) })
	}
	timer := time.AfterFunc(f.delay, fire)
	return func() { timer.Stop() }
}

// Logout clears the stored token.
func (f *Flow) Logout(ctx context.Context, store session.Store) {
	if _, ok := store.Get(); !ok {
		return
	}
	store.Clear()
	f.publish(ctx, events.Event{Topic: events.TopicLogout})
}

func (f *Flow) publish(ctx context.Context, ev events.Event) {
	if f.pub == nil {
		return
	}
	if err := f.pub.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish session event", "topic", ev.Topic, "error", err)
	}
}

// Message is the text the login page shows for err. Messages from the
// authority are passed through verbatim.
func Message(err error) string {
	var loginErr *authority.LoginError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &loginErr):
		return loginErr.Message
	case errors.Is(err, ErrInvalidInput):
		if field, ok := invalidField(err); ok && field == "Email" {
			return "Please enter a valid email address."
		}
		return "Email and password are required."
	default:
		return "Unable to sign in right now. Please try again."
	}
}
