package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chromedp/pageobj"
)

func path(locs ...pageobj.Locator) pageobj.Path {
	p := make(pageobj.Path, len(locs))
	for i, l := range locs {
		p[i] = pageobj.Step{Locator: l, Index: -1}
	}
	return p
}

func TestExpr(t *testing.T) {
	t.Parallel()

	p := pageobj.Path{
		{Locator: pageobj.CSS("#list"), Index: -1},
		{Locator: pageobj.CSSContainingText("li", `say "hi"`), Index: 2},
	}
	expr := Expr(p, OpAttribute, "href")
	if !strings.HasPrefix(expr, "(function(steps, op, arg)") {
		t.Errorf("expected expression to start with the embedded function, got: %.40s", expr)
	}
	want := `)([{"by":"css","sel":"#list","text":"","index":-1},{"by":"cssContainingText","sel":"li","text":"say \"hi\"","index":2}],"attribute","href")`
	if !strings.HasSuffix(expr, want) {
		t.Errorf("expected expression to end with %s, got: %s", want, expr[strings.LastIndex(expr, ")("):])
	}
}

func TestStateOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		st  pageobj.State
		exp Op
	}{
		{pageobj.StatePresent, OpPresent},
		{pageobj.StateVisible, OpVisible},
		{pageobj.StateClickable, OpClickable},
	}
	for _, test := range tests {
		op, err := StateOp(test.st)
		if err != nil {
			t.Fatalf("%v: got error: %v", test.st, err)
		}
		if op != test.exp {
			t.Errorf("%v: expected %q, got: %q", test.st, test.exp, op)
		}
	}
	if _, err := StateOp(pageobj.State(42)); err == nil {
		t.Error("expected error for unknown state")
	}
}

// fixed returns an evaluator returning res, recording the evaluated
// expressions in exprs.
func fixed(res string, exprs *[]string) Evaluator {
	return EvalFunc(func(_ context.Context, expr string) (string, error) {
		*exprs = append(*exprs, expr)
		return res, nil
	})
}

func TestReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := path(pageobj.ID("name"))

	var exprs []string
	n, err := Count(ctx, fixed("3", &exprs), p)
	if err != nil || n != 3 {
		t.Errorf("Count: expected 3, got: %d, %v", n, err)
	}
	ok, err := State(ctx, fixed("true", &exprs), p, pageobj.StateVisible)
	if err != nil || !ok {
		t.Errorf("State: expected true, got: %v, %v", ok, err)
	}
	text, err := Text(ctx, fixed(`{"value":"John"}`, &exprs), p)
	if err != nil || text != "John" {
		t.Errorf("Text: expected John, got: %q, %v", text, err)
	}
	v, set, err := Attribute(ctx, fixed(`{"value":"","ok":true}`, &exprs), p, "disabled")
	if err != nil || v != "" || !set {
		t.Errorf("Attribute: expected set empty value, got: %q, %v, %v", v, set, err)
	}
	loc, err := Location(ctx, fixed(`"https://example.com/"`, &exprs))
	if err != nil || loc != "https://example.com/" {
		t.Errorf("Location: got: %q, %v", loc, err)
	}
	if len(exprs) != 5 {
		t.Fatalf("expected 5 evaluations, got: %d", len(exprs))
	}
	for i, op := range []Op{OpCount, OpVisible, OpText, OpAttribute} {
		if !strings.Contains(exprs[i], `,"`+string(op)+`",`) {
			t.Errorf("evaluation %d: expected op %q", i, op)
		}
	}
	if exprs[4] != LocationJS {
		t.Errorf("expected %s, got: %s", LocationJS, exprs[4])
	}
}

func TestMissingElement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := path(pageobj.CSS("#missing"))
	var exprs []string
	if _, err := Text(ctx, fixed("null", &exprs), p); !errors.Is(err, pageobj.ErrNoSuchElement) {
		t.Errorf("Text: expected ErrNoSuchElement, got: %v", err)
	}
	if err := Clear(ctx, fixed("null", &exprs), p); !errors.Is(err, pageobj.ErrNoSuchElement) {
		t.Errorf("Clear: expected ErrNoSuchElement, got: %v", err)
	}
	if ok, err := Present(ctx, fixed("false", &exprs), p); err != nil || ok {
		t.Errorf("Present: expected false, got: %v, %v", ok, err)
	}
}

func TestInvalidResult(t *testing.T) {
	t.Parallel()

	var exprs []string
	if _, err := Title(context.Background(), fixed("{", &exprs)); err == nil {
		t.Error("expected error for invalid result")
	}
	boom := errors.New("boom")
	e := EvalFunc(func(context.Context, string) (string, error) { return "", boom })
	if _, err := Count(context.Background(), e, path(pageobj.CSS("p"))); !errors.Is(err, boom) {
		t.Errorf("expected evaluator error, got: %v", err)
	}
	if _, err := Count(context.Background(), e, nil); err == nil {
		t.Error("expected error for empty path")
	}
}
