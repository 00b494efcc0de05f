package pageobj

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Condition is a predicate over the state of the page. Conditions are
// stateless, and can be checked any number of times.
type Condition interface {
	Check(context.Context) (bool, error)
}

// ConditionFunc is an adapter to allow the use of an ordinary func as a
// Condition.
type ConditionFunc func(context.Context) (bool, error)

// Check satisfies the Condition interface.
func (f ConditionFunc) Check(ctx context.Context) (bool, error) {
	return f(ctx)
}

// String satisfies fmt.Stringer.
func (f ConditionFunc) String() string {
	return "condition"
}

type namedCondition struct {
	Condition
	name string
}

func (c namedCondition) String() string {
	return c.name
}

func named(c Condition, name string) Condition {
	return namedCondition{Condition: c, name: name}
}

// describe returns the description of c used in logs and timeout errors.
func describe(c Condition) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}

func rootOf(r Rooted) *Handle {
	h := r.Root()
	if h == nil {
		panic(fmt.Sprintf("%T has no root", r))
	}
	return h
}

// Present returns a condition that holds when the root element of r is
// attached to the document.
func Present(r Rooted) Condition {
	h := rootOf(r)
	return named(ConditionFunc(h.IsPresent), "present "+h.String())
}

// NotPresent returns a condition that holds when the root element of r is
// not attached to the document.
func NotPresent(r Rooted) Condition {
	h := rootOf(r)
	return named(Not(ConditionFunc(h.IsPresent)), "not present "+h.String())
}

// Visible returns a condition that holds when the root element of r is
// present and displayed.
func Visible(r Rooted) Condition {
	h := rootOf(r)
	return named(ConditionFunc(h.IsVisible), "visible "+h.String())
}

// Clickable returns a condition that holds when the root element of r is
// visible, enabled and not obscured by another element.
func Clickable(r Rooted) Condition {
	h := rootOf(r)
	return named(ConditionFunc(h.IsClickable), "clickable "+h.String())
}

// Not returns a condition that holds when c does not.
func Not(c Condition) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		ok, err := c.Check(ctx)
		return !ok && err == nil, err
	}), "not "+describe(c))
}

// And returns a condition that holds when every one of conds holds. The
// conditions are checked in order, stopping at the first one that does not
// hold.
func And(conds ...Condition) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		for _, c := range conds {
			if ok, err := c.Check(ctx); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}), join("and", conds))
}

// Or returns a condition that holds when any one of conds holds. The
// conditions are checked in order, stopping at the first one that holds.
func Or(conds ...Condition) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		for _, c := range conds {
			if ok, err := c.Check(ctx); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}), join("or", conds))
}

func join(op string, conds []Condition) string {
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = describe(c)
	}
	return "(" + strings.Join(names, " "+op+" ") + ")"
}

// TextPresent returns a condition that holds when the text of the root
// element of r contains text. An absent element does not hold.
func TextPresent(r Rooted, text string) Condition {
	h := rootOf(r)
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		s, err := h.Text(ctx)
		switch {
		case errors.Is(err, ErrNoSuchElement):
			return false, nil
		case err != nil:
			return false, err
		}
		return strings.Contains(s, text), nil
	}), fmt.Sprintf("text %q in %s", text, h))
}

// TitleIs returns a condition that holds when the page title is title.
func TitleIs(title string) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		s, err := Title(ctx)
		return s == title && err == nil, err
	}), fmt.Sprintf("title is %q", title))
}

// TitleContains returns a condition that holds when the page title contains
// title.
func TitleContains(title string) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		s, err := Title(ctx)
		return strings.Contains(s, title) && err == nil, err
	}), fmt.Sprintf("title contains %q", title))
}

// URLIs returns a condition that holds when the current URL is urlstr.
func URLIs(urlstr string) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		s, err := Location(ctx)
		return s == urlstr && err == nil, err
	}), fmt.Sprintf("url is %q", urlstr))
}

// URLContains returns a condition that holds when the current URL contains
// urlstr.
func URLContains(urlstr string) Condition {
	return named(ConditionFunc(func(ctx context.Context) (bool, error) {
		s, err := Location(ctx)
		return strings.Contains(s, urlstr) && err == nil, err
	}), fmt.Sprintf("url contains %q", urlstr))
}

// Done returns a condition that holds once ch yields nil or is closed. A
// non-nil error received from ch is returned by every subsequent check.
//
// It lets WaitUntil bound the time spent waiting for the result of a
// concurrent operation.
func Done(ch <-chan error) Condition {
	return &doneCondition{ch: ch}
}

type doneCondition struct {
	ch <-chan error

	mu   sync.Mutex
	done bool
	err  error
}

func (c *doneCondition) Check(context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		select {
		case err := <-c.ch:
			c.done, c.err = true, err
		default:
		}
	}
	return c.done && c.err == nil, c.err
}

func (c *doneCondition) String() string {
	return "done"
}
