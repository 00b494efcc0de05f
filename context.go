package pageobj

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// Default timings.
const (
	// DefaultPollInterval is the interval between two evaluations of a
	// condition, when neither the session nor the driver sets one.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultWaitTimeout is the timeout of the WaitFor* and FindWait*
	// funcs.
	DefaultWaitTimeout = 10 * time.Second

	// DefaultUntilTimeout is the timeout of WaitUntil.
	DefaultUntilTimeout = 30 * time.Second
)

// Session is attached to any context.Context which is valid for use with the
// funcs and handle methods of this package. It owns the driver and serializes
// every command sent to it.
type Session struct {
	// Driver is the driver that commands are sent to.
	Driver Driver

	// mu ensures only one command is outstanding at a time, so that
	// commands reach the driver in program order.
	mu sync.Mutex

	baseURL      string
	interval     time.Duration
	waitTimeout  time.Duration
	untilTimeout time.Duration

	// logging funcs
	logf, debugf, errorf func(string, ...interface{})
}

// NewContext creates a context carrying a session for the driver d.
//
// Cancelling the returned context aborts any wait or command in progress; it
// does not close the driver, whose lifecycle belongs to the caller.
func NewContext(parent context.Context, d Driver, opts ...SessionOption) (context.Context, context.CancelFunc) {
	if d == nil {
		panic("driver cannot be nil")
	}
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		Driver:       d,
		waitTimeout:  DefaultWaitTimeout,
		untilTimeout: DefaultUntilTimeout,
		logf:         defaultLogf,
		debugf:       nopLogf,
		errorf:       defaultErrorf,
	}
	if id, ok := d.(IntervalDriver); ok {
		s.interval = id.PollInterval()
	}

	// apply options
	for _, o := range opts {
		o(s)
	}
	if s.interval <= 0 {
		s.interval = DefaultPollInterval
	}

	return context.WithValue(ctx, contextKey{}, s), cancel
}

type contextKey struct{}

// FromContext extracts the Session stored inside a context.Context.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

func sessionFrom(ctx context.Context) (*Session, error) {
	s := FromContext(ctx)
	if s == nil || s.Driver == nil {
		return nil, ErrInvalidContext
	}
	return s, nil
}

// PollInterval returns the interval between two evaluations of a condition.
func (s *Session) PollInterval() time.Duration {
	return s.interval
}

// WaitTimeout returns the timeout used by the WaitFor* and FindWait* funcs
// when they are passed a non-positive timeout.
func (s *Session) WaitTimeout() time.Duration {
	return s.waitTimeout
}

// exec runs f against the driver, after every previously issued command has
// completed.
func (s *Session) exec(ctx context.Context, what string, f func(Driver) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	s.debugf("-> %s", what)
	if err := f(s.Driver); err != nil {
		s.debugf("<- %s: %v", what, err)
		return err
	}
	return nil
}

// resolveURL resolves urlstr against the session's base URL.
func (s *Session) resolveURL(urlstr string) (string, error) {
	if s.baseURL == "" {
		return urlstr, nil
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", s.baseURL, err)
	}
	ref, err := url.Parse(urlstr)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", urlstr, err)
	}
	return base.ResolveReference(ref).String(), nil
}
