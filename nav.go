package pageobj

import (
	"context"
	"fmt"
)

// Go navigates to urlstr, resolved against the session's base URL. It
// returns once the driver completed the navigation command; it does not wait
// for any page to be displayed.
func Go(ctx context.Context, urlstr string) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}
	urlstr, err = s.resolveURL(urlstr)
	if err != nil {
		return err
	}
	s.debugf("navigating to %s", urlstr)
	return s.exec(ctx, "navigate "+urlstr, func(d Driver) error {
		return d.Navigate(ctx, urlstr)
	})
}

// NavigateOption is a GoTo, To and Via option.
type NavigateOption = func(*navigateOptions)

type navigateOptions struct {
	urlstr string
}

// WithURL is a navigate option to navigate to urlstr instead of the page
// type's URL.
func WithURL(urlstr string) NavigateOption {
	return func(o *navigateOptions) { o.urlstr = urlstr }
}

// GoTo navigates to the URL of the page type T.
func GoTo[T any, P PageType[T]](ctx context.Context, opts ...NavigateOption) error {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.urlstr == "" {
		o.urlstr = newPage[T, P]().URL()
	}
	if o.urlstr == "" {
		return fmt.Errorf("%w: %s declares no url", ErrMissingURL, pageName[T]())
	}
	return Go(ctx, o.urlstr)
}

// At checks once whether the page type T is displayed, and returns a page if
// so. It returns nil and no error when it is not.
func At[T any, P PageType[T]](ctx context.Context) (P, error) {
	ok, err := IsAt[T, P](ctx)
	if err != nil || !ok {
		return nil, err
	}
	return newPage[T, P](), nil
}

// IsAt checks once whether the page type T is displayed.
func IsAt[T any, P PageType[T]](ctx context.Context) (bool, error) {
	if _, err := sessionFrom(ctx); err != nil {
		return false, err
	}
	return isAt[T, P](ctx)
}

// To navigates to the page type T, then checks once whether it is displayed,
// as At does.
func To[T any, P PageType[T]](ctx context.Context, opts ...NavigateOption) (P, error) {
	if err := GoTo[T, P](ctx, opts...); err != nil {
		return nil, err
	}
	return At[T, P](ctx)
}

// Via navigates to the page type T, and returns a page without checking
// whether it is displayed.
func Via[T any, P PageType[T]](ctx context.Context, opts ...NavigateOption) (P, error) {
	if err := GoTo[T, P](ctx, opts...); err != nil {
		return nil, err
	}
	return newPage[T, P](), nil
}

// Location returns the current URL.
func Location(ctx context.Context) (string, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return "", err
	}
	var urlstr string
	err = s.exec(ctx, "location", func(d Driver) (err error) {
		urlstr, err = d.Location(ctx)
		return err
	})
	return urlstr, err
}

// Title returns the title of the current page.
func Title(ctx context.Context) (string, error) {
	s, err := sessionFrom(ctx)
	if err != nil {
		return "", err
	}
	var title string
	err = s.exec(ctx, "title", func(d Driver) (err error) {
		title, err = d.Title(ctx)
		return err
	})
	return title, err
}
