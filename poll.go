package pageobj

import (
	"context"
	"errors"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// WaitUntil blocks until cond holds, evaluating it immediately and then at
// the session's poll interval.
//
// If timeout elapses first, a *TimeoutError carrying msg is returned. A
// non-positive timeout uses the session's until timeout. Errors returned by
// cond, and the error of a cancelled ctx, are returned unchanged.
func WaitUntil(ctx context.Context, cond Condition, timeout time.Duration, msg ...string) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = s.untilTimeout
	}
	return s.poll(ctx, cond, timeout, strings.Join(msg, " "))
}

func (s *Session) poll(ctx context.Context, cond Condition, timeout time.Duration, msg string) error {
	s.debugf("waiting up to %v for %s", timeout, describe(cond))
	start := time.Now()
	var checks int
	err := wait.PollUntilContextTimeout(ctx, s.interval, timeout, true, func(ctx context.Context) (bool, error) {
		checks++
		return cond.Check(ctx)
	})
	switch {
	case err == nil:
		s.debugf("%s satisfied after %v (%d checks)", describe(cond), time.Since(start), checks)
		return nil
	case ctx.Err() != nil:
		// the caller gave up, not the wait
		return ctx.Err()
	case wait.Interrupted(err) || errors.Is(err, context.DeadlineExceeded):
		s.debugf("%s not satisfied after %v (%d checks)", describe(cond), timeout, checks)
		return &TimeoutError{Message: msg, Timeout: timeout}
	}
	s.errorf("could not check %s: %v", describe(cond), err)
	return err
}

// waitState waits until cond holds, using the session's wait timeout
// when timeout is non-positive.
func waitState(ctx context.Context, cond Condition, timeout time.Duration) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = s.waitTimeout
	}
	return s.poll(ctx, cond, timeout, describe(cond))
}

// WaitFor waits until the root element of r is present, and returns r
// unchanged.
func WaitFor[P Rooted](ctx context.Context, r P, timeout time.Duration) (P, error) {
	if err := waitState(ctx, Present(r), timeout); err != nil {
		var zero P
		return zero, err
	}
	return r, nil
}

// WaitForNotPresent waits until the root element of r is no longer present.
func WaitForNotPresent(ctx context.Context, r Rooted, timeout time.Duration) error {
	return waitState(ctx, NotPresent(r), timeout)
}

// WaitForVisible waits until the root element of r is visible, and returns r
// unchanged.
func WaitForVisible[P Rooted](ctx context.Context, r P, timeout time.Duration) (P, error) {
	if err := waitState(ctx, Visible(r), timeout); err != nil {
		var zero P
		return zero, err
	}
	return r, nil
}

// WaitForClickable waits until the root element of r is clickable, and
// returns r unchanged.
func WaitForClickable[P Rooted](ctx context.Context, r P, timeout time.Duration) (P, error) {
	if err := waitState(ctx, Clickable(r), timeout); err != nil {
		var zero P
		return zero, err
	}
	return r, nil
}

// WaitUntilAt polls the IsAt predicate of the page type T until it holds,
// then returns a fresh page. A non-positive timeout uses the session's wait
// timeout.
func WaitUntilAt[T any, P PageType[T]](ctx context.Context, timeout time.Duration) (P, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = s.waitTimeout
	}
	cond := named(ConditionFunc(isAt[T, P]), "at "+pageName[T]())
	if err := s.poll(ctx, cond, timeout, describe(cond)); err != nil {
		return nil, err
	}
	return newPage[T, P](), nil
}
