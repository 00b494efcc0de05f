package pageobj

import (
	"fmt"
	"strconv"
)

// By is a locator strategy.
type By int

// Locator strategies.
const (
	// ByCSS selects elements with a CSS selector (querySelectorAll).
	ByCSS By = iota + 1

	// ByID selects elements by their id attribute.
	ByID

	// ByXPath selects elements with an XPath expression, evaluated relative
	// to the search context.
	ByXPath

	// ByName selects elements by their name attribute.
	ByName

	// ByLinkText selects anchors whose visible text equals the selector.
	ByLinkText

	// ByPartialLinkText selects anchors whose visible text contains the
	// selector.
	ByPartialLinkText

	// ByButtonText selects buttons (and button-like inputs) whose text
	// equals the selector.
	ByButtonText

	// ByCSSContainingText selects elements matching a CSS selector whose
	// text contains a given string.
	ByCSSContainingText
)

// String satisfies fmt.Stringer.
func (b By) String() string {
	switch b {
	case ByCSS:
		return "css"
	case ByID:
		return "id"
	case ByXPath:
		return "xpath"
	case ByName:
		return "name"
	case ByLinkText:
		return "linkText"
	case ByPartialLinkText:
		return "partialLinkText"
	case ByButtonText:
		return "buttonText"
	case ByCSSContainingText:
		return "cssContainingText"
	}
	return "By(" + strconv.Itoa(int(b)) + ")"
}

// Locator is an opaque, immutable selection expression. The zero value
// selects nothing and is treated as "no locator" by the resolver.
//
// Locators are comparable, and two locators built from the same strategy and
// arguments are equal.
type Locator struct {
	by   By
	sel  string
	text string
}

// CSS returns a locator for the CSS selector sel.
func CSS(sel string) Locator {
	return Locator{by: ByCSS, sel: sel}
}

// ID returns a locator for the element with the id attribute id.
func ID(id string) Locator {
	return Locator{by: ByID, sel: id}
}

// XPath returns a locator for the XPath expression expr.
func XPath(expr string) Locator {
	return Locator{by: ByXPath, sel: expr}
}

// Name returns a locator for elements whose name attribute is name.
func Name(name string) Locator {
	return Locator{by: ByName, sel: name}
}

// LinkText returns a locator for anchors with the exact visible text.
func LinkText(text string) Locator {
	return Locator{by: ByLinkText, sel: text}
}

// PartialLinkText returns a locator for anchors containing text.
func PartialLinkText(text string) Locator {
	return Locator{by: ByPartialLinkText, sel: text}
}

// ButtonText returns a locator for buttons with the exact text.
func ButtonText(text string) Locator {
	return Locator{by: ByButtonText, sel: text}
}

// CSSContainingText returns a locator for elements matching sel whose text
// contains text.
func CSSContainingText(sel, text string) Locator {
	return Locator{by: ByCSSContainingText, sel: sel, text: text}
}

// By returns the locator's strategy.
func (l Locator) By() By {
	return l.by
}

// Selector returns the locator's selection expression.
func (l Locator) Selector() string {
	return l.sel
}

// Text returns the text filter of a ByCSSContainingText locator, and the
// empty string for every other strategy.
func (l Locator) Text() string {
	return l.text
}

// IsZero reports whether l is the zero Locator.
func (l Locator) IsZero() bool {
	return l == Locator{}
}

// String satisfies fmt.Stringer.
func (l Locator) String() string {
	switch {
	case l.IsZero():
		return "<none>"
	case l.by == ByCSSContainingText:
		return fmt.Sprintf("%s(%q, %q)", l.by, l.sel, l.text)
	}
	return fmt.Sprintf("%s(%q)", l.by, l.sel)
}
