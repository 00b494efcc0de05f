package pageobj

import (
	"context"
	"fmt"
	"time"
)

// Base is embedded by page object types. It holds the object's root handle
// and scopes every lookup to it.
//
// A page object type declares its default locator with a value receiver:
//
//	type SubmitButton struct{ pageobj.Base }
//
//	func (SubmitButton) DefaultLocator() pageobj.Locator { return pageobj.CSS("#submit") }
type Base struct {
	root *Handle
}

func (b *Base) bind(h *Handle) {
	b.root = h
}

// Root returns the object's root handle.
func (b *Base) Root() *Handle {
	return b.root
}

// Element returns a handle to the first element matching loc within the
// object's root.
func (b *Base) Element(loc Locator) *Handle {
	return b.mustRoot().Element(loc)
}

// All returns the set of elements matching loc within the object's root.
func (b *Base) All(loc Locator) *ElementSet {
	return b.mustRoot().All(loc)
}

func (b *Base) mustRoot() *Handle {
	if b.root == nil {
		panic("page object has no root; create it with Find or New")
	}
	return b.root
}

// Rooted is implemented by page objects and handles.
type Rooted interface {
	Root() *Handle
}

// Object is the constraint satisfied by pointers to page object types, ie
// types embedding Base.
type Object[T any] interface {
	*T
	Root() *Handle
	bind(*Handle)
}

// Locatable is implemented by page object types declaring a default locator.
// The method is called on a zero value, so it must not depend on instance
// data.
type Locatable interface {
	DefaultLocator() Locator
}

// New returns a page object of type T wrapping h.
func New[T any, P Object[T]](h *Handle) P {
	p := P(new(T))
	p.bind(h)
	return p
}

// FindOption is a Find* option.
type FindOption = func(*findOptions)

type findOptions struct {
	loc   Locator
	scope SearchContext
}

// Using is a Find* option to locate the page object with loc instead of its
// type's default locator.
func Using(loc Locator) FindOption {
	return func(o *findOptions) { o.loc = loc }
}

// Within is a Find* option to resolve the page object within sc instead of
// the whole document.
func Within(sc SearchContext) FindOption {
	return func(o *findOptions) { o.scope = sc }
}

// ResolveLocator determines the final locator and search context for the page
// object type T. The locator defaults to T's DefaultLocator, and the search
// context defaults to Document. A type without a default locator, used
// without Using, returns an error wrapping ErrMissingLocator.
func ResolveLocator[T any, P Object[T]](opts ...FindOption) (Locator, SearchContext, error) {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.scope == nil {
		o.scope = Document
	}
	if o.loc.IsZero() {
		var zero T
		if l, ok := any(&zero).(Locatable); ok {
			o.loc = l.DefaultLocator()
		}
	}
	if o.loc.IsZero() {
		return Locator{}, nil, fmt.Errorf("%w: %T declares no default locator", ErrMissingLocator, new(T))
	}
	return o.loc, o.scope, nil
}

// Find returns a page object of type T wrapping the first element matching
// its locator. It never contacts the driver: the object is valid even if its
// element does not exist yet.
func Find[T any, P Object[T]](opts ...FindOption) (P, error) {
	loc, scope, err := ResolveLocator[T, P](opts...)
	if err != nil {
		return nil, err
	}
	return New[T, P](scope.Element(loc)), nil
}

// FindAt returns a page object of type T wrapping the index-th element
// matching its locator. It never contacts the driver, but fails with
// ErrUnsupportedOperation if the search context cannot resolve multiple
// elements.
func FindAt[T any, P Object[T]](index int, opts ...FindOption) (P, error) {
	loc, scope, err := ResolveLocator[T, P](opts...)
	if err != nil {
		return nil, err
	}
	set, err := All(scope, loc)
	if err != nil {
		return nil, err
	}
	return New[T, P](set.Get(index)), nil
}

// FindWait is like Find, but waits until the element is present. A
// non-positive timeout uses the session's wait timeout.
func FindWait[T any, P Object[T]](ctx context.Context, timeout time.Duration, opts ...FindOption) (P, error) {
	p, err := Find[T, P](opts...)
	if err != nil {
		return nil, err
	}
	return WaitFor(ctx, p, timeout)
}

// FindWaitForVisible is like Find, but waits until the element is visible. A
// non-positive timeout uses the session's wait timeout.
func FindWaitForVisible[T any, P Object[T]](ctx context.Context, timeout time.Duration, opts ...FindOption) (P, error) {
	p, err := Find[T, P](opts...)
	if err != nil {
		return nil, err
	}
	return WaitForVisible(ctx, p, timeout)
}

// FindAll returns a page object of type T for each element currently
// matching its locator, in document order.
func FindAll[T any, P Object[T]](ctx context.Context, opts ...FindOption) ([]P, error) {
	handles, err := findHandles[T, P](ctx, opts...)
	if err != nil {
		return nil, err
	}
	objs := make([]P, len(handles))
	for i, h := range handles {
		objs[i] = New[T, P](h)
	}
	return objs, nil
}

// FindAllVisible is like FindAll, but only returns the objects whose element
// is visible when checked. Elements are checked one at a time, in document
// order; the first failing check aborts the call.
func FindAllVisible[T any, P Object[T]](ctx context.Context, opts ...FindOption) ([]P, error) {
	handles, err := findHandles[T, P](ctx, opts...)
	if err != nil {
		return nil, err
	}
	var objs []P
	for _, h := range handles {
		visible, err := h.IsVisible(ctx)
		if err != nil {
			return nil, err
		}
		if visible {
			objs = append(objs, New[T, P](h))
		}
	}
	return objs, nil
}

func findHandles[T any, P Object[T]](ctx context.Context, opts ...FindOption) ([]*Handle, error) {
	loc, scope, err := ResolveLocator[T, P](opts...)
	if err != nil {
		return nil, err
	}
	set, err := All(scope, loc)
	if err != nil {
		return nil, err
	}
	return set.Elements(ctx)
}
