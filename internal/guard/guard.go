// Package guard decides, on every protected page mount, whether the caller
// holds a valid session and where to send them if not.
//
// A Guard is shared and stateless; each page mount gets its own Mount,
// which walks Checking -> Authenticated | Unauthenticated exactly once and
// carries a cancellation scope that ends with the page. Once a mount is
// unmounted, late results are dropped: no state change, no store write and
// no navigation happen on its behalf.
package guard

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/session"
)

// DefaultLoginPath is where unauthenticated mounts are sent.
const DefaultLoginPath = "/login"

// State is the per-mount session state.
type State int

const (
	Checking State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Validator asks the remote authority about a token.
type Validator interface {
	Validate(ctx context.Context, t session.Token) authority.Outcome
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, t session.Token) authority.Outcome

func (f ValidatorFunc) Validate(ctx context.Context, t session.Token) authority.Outcome {
	return f(ctx, t)
}

// Navigator performs client-side navigation to dest.
type Navigator interface {
	Navigate(dest string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(dest string)

func (f NavigatorFunc) Navigate(dest string) { f(dest) }

// RetryPolicy bounds how often an Unreachable validation is retried before
// the session is given up. Invalid answers are never retried.
type RetryPolicy struct {
	Retries int
	Backoff time.Duration
}

// MountEvent describes one state transition of a mount.
type MountEvent struct {
	MountID string
	State   State
	Err     error
	User    *authority.UserContext
}

// Observer is told about every transition of every mount.
type Observer interface {
	MountChanged(MountEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(MountEvent)

func (f ObserverFunc) MountChanged(ev MountEvent) { f(ev) }

// Options configures a Guard.
type Options struct {
	Validator Validator
	// LoginPath defaults to DefaultLoginPath.
	LoginPath string
	Retry     RetryPolicy
	// Observer is optional.
	Observer Observer
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Guard builds mounts that share one validator and policy.
type Guard struct {
	validator Validator
	loginPath string
	retry     RetryPolicy
	observer  Observer
	logger    *slog.Logger
}

// New creates a Guard. It panics if opts.Validator is nil.
func New(opts Options) *Guard {
	if opts.Validator == nil {
		panic("guard: nil Validator")
	}
	g := &Guard{
		validator: opts.Validator,
		loginPath: opts.LoginPath,
		retry:     opts.Retry,
		observer:  opts.Observer,
		logger:    opts.Logger,
	}
	if g.loginPath == "" {
		g.loginPath = DefaultLoginPath
	}
	if g.retry.Retries < 0 {
		g.retry.Retries = 0
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// LoginPath returns the destination for unauthenticated mounts.
func (g *Guard) LoginPath() string {
	return g.loginPath
}

// Check mounts and runs the state machine synchronously.
func (g *Guard) Check(ctx context.Context, store session.Store, nav Navigator) *Mount {
	m := g.Mount(ctx, store, nav)
	m.Run()
	return m
}

func (g *Guard) notify(ev MountEvent) {
	if g.observer != nil {
		g.observer.MountChanged(ev)
	}
}

// sleep waits for d or until ctx ends, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
