package pageobj

import (
	"context"
	"fmt"
)

// SearchContext is anything that can resolve a Locator to a Handle.
type SearchContext interface {
	// Element returns a handle to the first element matching loc within
	// the context. It never contacts the driver.
	Element(loc Locator) *Handle
}

// MultiSearchContext is a SearchContext that can also resolve a Locator to
// a set of elements.
type MultiSearchContext interface {
	SearchContext

	// All returns the set of elements matching loc within the context. It
	// never contacts the driver.
	All(loc Locator) *ElementSet
}

// All returns the set of elements matching loc within sc. It returns
// ErrUnsupportedOperation, without contacting the driver, if sc cannot
// resolve multiple elements.
func All(sc SearchContext, loc Locator) (*ElementSet, error) {
	m, ok := sc.(MultiSearchContext)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot resolve multiple elements", ErrUnsupportedOperation, sc)
	}
	return m.All(loc), nil
}

// Document is the whole-document search context.
var Document MultiSearchContext = document{}

type document struct{}

func (document) Element(loc Locator) *Handle {
	return newHandle(loc, Document, -1)
}

func (document) All(loc Locator) *ElementSet {
	return &ElementSet{loc: loc, scope: Document}
}

func (document) Path() Path {
	return nil
}

func (document) String() string {
	return "document"
}

// ContextFunc is an adapter to allow the use of an ordinary func as a
// SearchContext. It can only resolve single elements.
type ContextFunc func(Locator) *Handle

// Element satisfies the SearchContext interface.
func (f ContextFunc) Element(loc Locator) *Handle {
	return f(loc)
}

// pather is implemented by the search contexts whose elements can be
// addressed from the document root.
type pather interface {
	Path() Path
}

// Handle is a lazy reference to one element: a locator paired with the
// search context it was resolved against. Creating a handle never contacts
// the driver, and every operation on it resolves the element afresh, so a
// handle never refers to a stale element across page transitions.
type Handle struct {
	loc   Locator
	scope SearchContext
	index int
}

func newHandle(loc Locator, scope SearchContext, index int) *Handle {
	if index < 0 {
		index = -1
	}
	return &Handle{loc: loc, scope: scope, index: index}
}

// Locator returns the handle's locator.
func (h *Handle) Locator() Locator {
	return h.loc
}

// Scope returns the search context the handle was resolved against.
func (h *Handle) Scope() SearchContext {
	return h.scope
}

// Index returns the position of the handle among the matches of its
// locator, or -1 when the handle refers to the first match.
func (h *Handle) Index() int {
	return h.index
}

// Path returns the path addressing the handle from the document root.
func (h *Handle) Path() Path {
	var prefix Path
	if p, ok := h.scope.(pather); ok {
		prefix = p.Path()
	}
	path := make(Path, len(prefix), len(prefix)+1)
	copy(path, prefix)
	return append(path, Step{Locator: h.loc, Index: h.index})
}

// Root returns h, so that handles can be used wherever a Rooted value is
// expected.
func (h *Handle) Root() *Handle {
	return h
}

// Element returns a handle to the first element matching loc among the
// descendants of h.
func (h *Handle) Element(loc Locator) *Handle {
	return newHandle(loc, h, -1)
}

// All returns the set of elements matching loc among the descendants of h.
func (h *Handle) All(loc Locator) *ElementSet {
	return &ElementSet{loc: loc, scope: h}
}

// Equal reports whether h and o refer to the same (locator, scope, index).
func (h *Handle) Equal(o *Handle) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h.loc != o.loc || h.index != o.index {
		return false
	}
	hs, hok := h.scope.(*Handle)
	os, ook := o.scope.(*Handle)
	if hok && ook {
		return hs.Equal(os)
	}
	if hok || ook {
		return false
	}
	return sameContext(h.scope, o.scope)
}

func sameContext(a, b SearchContext) (same bool) {
	// func types are not comparable
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// String satisfies fmt.Stringer.
func (h *Handle) String() string {
	return h.Path().String()
}

// IsPresent reports whether the element is attached to the document.
func (h *Handle) IsPresent(ctx context.Context) (bool, error) {
	return h.state(ctx, StatePresent)
}

// IsVisible reports whether the element is present and displayed.
func (h *Handle) IsVisible(ctx context.Context) (bool, error) {
	return h.state(ctx, StateVisible)
}

// IsClickable reports whether the element is visible, enabled and not
// obscured.
func (h *Handle) IsClickable(ctx context.Context) (bool, error) {
	return h.state(ctx, StateClickable)
}

func (h *Handle) state(ctx context.Context, st State) (bool, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return false, err
	}
	p := h.Path()
	var ok bool
	err = s.exec(ctx, fmt.Sprintf("state %s %s", st, p), func(d Driver) (err error) {
		ok, err = d.State(ctx, p, st)
		return err
	})
	return ok, err
}

// Click clicks the element.
func (h *Handle) Click(ctx context.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	p := h.Path()
	return s.exec(ctx, "click "+p.String(), func(d Driver) error {
		return d.Click(ctx, p)
	})
}

// SendKeys types keys into the element.
func (h *Handle) SendKeys(ctx context.Context, keys string) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	p := h.Path()
	return s.exec(ctx, "send keys "+p.String(), func(d Driver) error {
		return d.SendKeys(ctx, p, keys)
	})
}

// Clear clears the value of the input or textarea element.
func (h *Handle) Clear(ctx context.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	p := h.Path()
	return s.exec(ctx, "clear "+p.String(), func(d Driver) error {
		return d.Clear(ctx, p)
	})
}

// Text returns the visible text of the element.
func (h *Handle) Text(ctx context.Context) (string, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return "", err
	}
	p := h.Path()
	var text string
	err = s.exec(ctx, "text "+p.String(), func(d Driver) (err error) {
		text, err = d.Text(ctx, p)
		return err
	})
	return text, err
}

// Attribute returns the named attribute of the element, and whether it was
// set.
func (h *Handle) Attribute(ctx context.Context, name string) (string, bool, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return "", false, err
	}
	p := h.Path()
	var (
		value string
		ok    bool
	)
	err = s.exec(ctx, fmt.Sprintf("attribute %q %s", name, p), func(d Driver) (err error) {
		value, ok, err = d.Attribute(ctx, p, name)
		return err
	})
	return value, ok, err
}
