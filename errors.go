package pageobj

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Error types.
var (
	// ErrInvalidContext is the error returned when a context carries no
	// session, ie it was not created via NewContext.
	ErrInvalidContext = errors.New("invalid context")

	// ErrUnsupportedOperation is the error returned when multiple elements
	// are requested from a search context that can only resolve one.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMissingLocator is the error returned when a page object type is
	// used without an explicit locator and declares no default one.
	ErrMissingLocator = errors.New("missing locator")

	// ErrMissingURL is the error returned when navigating to a page type
	// that declares no URL, without an explicit one.
	ErrMissingURL = errors.New("missing url")

	// ErrTimeout is the error matched by every TimeoutError.
	ErrTimeout = errors.New("wait timed out")

	// ErrNoSuchElement is the error returned by drivers when an element to
	// interact with is not present.
	ErrNoSuchElement = errors.New("no such element")
)

// TimeoutError is the error returned when a wait does not succeed within its
// allotted time.
type TimeoutError struct {
	// Message is the optional caller supplied diagnostic.
	Message string

	// Timeout is the time that was allotted to the wait.
	Timeout time.Duration
}

// Error satisfies the error interface.
func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wait timed out after %v", e.Timeout)
	}
	return fmt.Sprintf("wait timed out after %v: %s", e.Timeout, e.Message)
}

// Unwrap makes a TimeoutError match both ErrTimeout and
// context.DeadlineExceeded.
func (e *TimeoutError) Unwrap() []error {
	return []error{ErrTimeout, context.DeadlineExceeded}
}
