package pageobj

import (
	"context"
	"fmt"
)

// Page is embedded by page types, which represent a whole screen. Lookups
// made through a page are scoped to the whole document.
//
// A page type declares its URL and how to tell it is displayed, with value
// receivers:
//
//	type LoginPage struct{ pageobj.Page }
//
//	func (LoginPage) URL() string { return "/login" }
//
//	func (LoginPage) IsAt(ctx context.Context) (bool, error) {
//		return pageobj.Document.Element(pageobj.ID("login-form")).IsPresent(ctx)
//	}
type Page struct{}

// Element returns a handle to the first element matching loc in the
// document.
func (Page) Element(loc Locator) *Handle {
	return Document.Element(loc)
}

// All returns the set of elements matching loc in the document.
func (Page) All(loc Locator) *ElementSet {
	return Document.All(loc)
}

// PageType is the constraint satisfied by pointers to page types. URL and
// IsAt are called on a zero value, so they must not depend on instance data.
type PageType[T any] interface {
	*T
	URL() string
	IsAt(context.Context) (bool, error)
}

func newPage[T any, P PageType[T]]() P {
	return P(new(T))
}

func isAt[T any, P PageType[T]](ctx context.Context) (bool, error) {
	return newPage[T, P]().IsAt(ctx)
}

func pageName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
