package pageobj

import (
	"context"
	"fmt"
)

// ElementSet is a lazy reference to every element matching a locator within a
// search context. It is only resolved when counted or enumerated.
type ElementSet struct {
	loc   Locator
	scope SearchContext
}

// Locator returns the set's locator.
func (s *ElementSet) Locator() Locator {
	return s.loc
}

// Scope returns the search context the set was resolved against.
func (s *ElementSet) Scope() SearchContext {
	return s.scope
}

// Path returns the path of the set; its last step carries no index.
func (s *ElementSet) Path() Path {
	return newHandle(s.loc, s.scope, -1).Path()
}

// Get returns a handle to the i-th matching element, without contacting the
// driver. No bounds check is done: whether an out of range index fails is up
// to the driver, on first use of the handle.
func (s *ElementSet) Get(i int) *Handle {
	if i < 0 {
		panic(fmt.Sprintf("negative element index %d", i))
	}
	return newHandle(s.loc, s.scope, i)
}

// First returns a handle to the first matching element.
func (s *ElementSet) First() *Handle {
	return s.Get(0)
}

// Count returns the number of currently matching elements.
func (s *ElementSet) Count(ctx context.Context) (int, error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return 0, err
	}
	p := s.Path()
	var n int
	err = sess.exec(ctx, "count "+p.String(), func(d Driver) (err error) {
		n, err = d.Count(ctx, p)
		return err
	})
	return n, err
}

// Elements returns a handle for each currently matching element, in document
// order. The result is a snapshot: call Elements again to observe changes.
func (s *ElementSet) Elements(ctx context.Context) ([]*Handle, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	handles := make([]*Handle, n)
	for i := range handles {
		handles[i] = s.Get(i)
	}
	return handles, nil
}

// String satisfies fmt.Stringer.
func (s *ElementSet) String() string {
	return s.Path().String() + "[*]"
}
