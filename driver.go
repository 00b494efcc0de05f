package pageobj

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Driver is the remote UI driver that issues commands to a browser. Every
// method is a single round-trip; implementations must not retry.
//
// Elements are addressed by Path. Drivers resolve a path afresh on every
// call, so no element reference survives between calls.
type Driver interface {
	// Count reports how many elements currently match the last step of p,
	// within the element resolved by the steps before it. The index of the
	// last step is ignored.
	Count(ctx context.Context, p Path) (int, error)

	// State reports whether the element at p is in state s. A missing
	// element is not an error; it is simply not in any state.
	State(ctx context.Context, p Path, s State) (bool, error)

	// Navigate loads urlstr in the current page, returning once the
	// navigation command has completed.
	Navigate(ctx context.Context, urlstr string) error

	// Location returns the current document location.
	Location(ctx context.Context) (string, error)

	// Title returns the current document title.
	Title(ctx context.Context) (string, error)

	// Click clicks the element at p.
	Click(ctx context.Context, p Path) error

	// SendKeys types keys into the element at p.
	SendKeys(ctx context.Context, p Path, keys string) error

	// Clear clears the value of the input or textarea at p.
	Clear(ctx context.Context, p Path) error

	// Text returns the visible text of the element at p.
	Text(ctx context.Context, p Path) (string, error)

	// Attribute returns the named attribute of the element at p, and
	// whether the attribute was set.
	Attribute(ctx context.Context, p Path, name string) (string, bool, error)
}

// IntervalDriver is implemented by drivers that define their own polling
// interval.
type IntervalDriver interface {
	PollInterval() time.Duration
}

// State is an element state that can be checked with Driver.State.
type State int

// Element states.
const (
	// StatePresent is the state of an element attached to the document.
	StatePresent State = iota + 1

	// StateVisible is the state of a present element that is rendered
	// with a non-empty box and is not hidden by style.
	StateVisible

	// StateClickable is the state of a visible, enabled element that is
	// not obscured at its center point.
	StateClickable
)

// String satisfies fmt.Stringer.
func (s State) String() string {
	switch s {
	case StatePresent:
		return "present"
	case StateVisible:
		return "visible"
	case StateClickable:
		return "clickable"
	}
	return "unknown"
}

// Step is a single lookup in a Path.
type Step struct {
	// Locator selects the candidate elements.
	Locator Locator

	// Index selects among the candidates. A negative index selects the
	// first match.
	Index int
}

// Path addresses an element from the document root, one lookup per scope.
type Path []Step

// String satisfies fmt.Stringer.
func (p Path) String() string {
	if len(p) == 0 {
		return "document"
	}
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteString(" > ")
		}
		sb.WriteString(s.Locator.String())
		if s.Index >= 0 {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(s.Index))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// Equal reports whether p and o hold the same steps.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}
