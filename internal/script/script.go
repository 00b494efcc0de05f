// Package script holds the javascript that browser drivers evaluate to
// resolve paths and read element state.
package script

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"

	"github.com/chromedp/pageobj"
)

// pageobjJS is a javascript function taking a path, an operation and its
// argument. It resolves the path in the document and runs the operation on
// the element, returning a JSON encoded result, or the element itself for
// OpElement.
//
//go:embed js/pageobj.js
var pageobjJS string

// Expressions that do not depend on an element.
const (
	// LocationJS evaluates to the JSON encoded document location.
	LocationJS = `JSON.stringify(location.href)`

	// TitleJS evaluates to the JSON encoded document title.
	TitleJS = `JSON.stringify(document.title)`
)

// Op is an operation run on the element at a path.
type Op string

// Operations.
const (
	OpCount     Op = "count"
	OpElement   Op = "element"
	OpPresent   Op = "present"
	OpVisible   Op = "visible"
	OpClickable Op = "clickable"
	OpText      Op = "text"
	OpAttribute Op = "attribute"
	OpClear     Op = "clear"
)

// StateOp returns the operation checking st.
func StateOp(st pageobj.State) (Op, error) {
	switch st {
	case pageobj.StatePresent:
		return OpPresent, nil
	case pageobj.StateVisible:
		return OpVisible, nil
	case pageobj.StateClickable:
		return OpClickable, nil
	}
	return "", fmt.Errorf("unknown element state %v", st)
}

// Expr returns the expression running op with arg on the element at p.
func Expr(p pageobj.Path, op Op, arg string) string {
	w := &jwriter.Writer{}
	w.RawByte('(')
	w.RawString(pageobjJS)
	w.RawString(")(")
	writePath(w, p)
	w.RawByte(',')
	w.String(string(op))
	w.RawByte(',')
	w.String(arg)
	w.RawByte(')')
	buf, _ := w.BuildBytes()
	return string(buf)
}

// Element returns the expression evaluating to the element at p, or null.
func Element(p pageobj.Path) string {
	return Expr(p, OpElement, "")
}

func writePath(w *jwriter.Writer, p pageobj.Path) {
	w.RawByte('[')
	for i, s := range p {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"by":`)
		w.String(s.Locator.By().String())
		w.RawString(`,"sel":`)
		w.String(s.Locator.Selector())
		w.RawString(`,"text":`)
		w.String(s.Locator.Text())
		w.RawString(`,"index":`)
		w.Int(s.Index)
		w.RawByte('}')
	}
	w.RawByte(']')
}

// Evaluator evaluates a javascript expression in the current page, and
// returns its string result.
type Evaluator interface {
	Eval(ctx context.Context, expr string) (string, error)
}

// EvalFunc is an adapter to allow the use of an ordinary func as an
// Evaluator.
type EvalFunc func(ctx context.Context, expr string) (string, error)

// Eval satisfies the Evaluator interface.
func (f EvalFunc) Eval(ctx context.Context, expr string) (string, error) {
	return f(ctx, expr)
}

func eval(ctx context.Context, e Evaluator, expr string) (gjson.Result, error) {
	res, err := e.Eval(ctx, expr)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.Valid(res) {
		return gjson.Result{}, fmt.Errorf("invalid script result %q", res)
	}
	return gjson.Parse(res), nil
}

// element runs op on the element at p, returning ErrNoSuchElement when it is
// not present.
func element(ctx context.Context, e Evaluator, p pageobj.Path, op Op, arg string) (gjson.Result, error) {
	res, err := eval(ctx, e, Expr(p, op, arg))
	if err != nil {
		return res, err
	}
	if res.Type == gjson.Null {
		return res, fmt.Errorf("%w: %v", pageobj.ErrNoSuchElement, p)
	}
	return res, nil
}

// Count returns the number of elements matching the last step of p.
func Count(ctx context.Context, e Evaluator, p pageobj.Path) (int, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("cannot count an empty path")
	}
	res, err := eval(ctx, e, Expr(p, OpCount, ""))
	if err != nil {
		return 0, err
	}
	return int(res.Int()), nil
}

// State reports whether the element at p is in state st.
func State(ctx context.Context, e Evaluator, p pageobj.Path, st pageobj.State) (bool, error) {
	op, err := StateOp(st)
	if err != nil {
		return false, err
	}
	res, err := eval(ctx, e, Expr(p, op, ""))
	if err != nil {
		return false, err
	}
	return res.Bool(), nil
}

// Present reports whether the element at p is present.
func Present(ctx context.Context, e Evaluator, p pageobj.Path) (bool, error) {
	return State(ctx, e, p, pageobj.StatePresent)
}

// Text returns the visible text of the element at p.
func Text(ctx context.Context, e Evaluator, p pageobj.Path) (string, error) {
	res, err := element(ctx, e, p, OpText, "")
	if err != nil {
		return "", err
	}
	return res.Get("value").String(), nil
}

// Attribute returns the named attribute of the element at p.
func Attribute(ctx context.Context, e Evaluator, p pageobj.Path, name string) (string, bool, error) {
	res, err := element(ctx, e, p, OpAttribute, name)
	if err != nil {
		return "", false, err
	}
	return res.Get("value").String(), res.Get("ok").Bool(), nil
}

// Clear empties the value of the element at p, firing input and change
// events.
func Clear(ctx context.Context, e Evaluator, p pageobj.Path) error {
	_, err := element(ctx, e, p, OpClear, "")
	return err
}

// Location returns the document location.
func Location(ctx context.Context, e Evaluator) (string, error) {
	res, err := eval(ctx, e, LocationJS)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// Title returns the document title.
func Title(ctx context.Context, e Evaluator) (string, error) {
	res, err := eval(ctx, e, TitleJS)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
