package pageobj_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/pageobjtest"
)

func TestHandleLazy(t *testing.T) {
	t.Parallel()

	d := pageobjtest.NewDriver()
	h := pageobj.Document.Element(pageobj.CSS("#missing"))
	h.Element(pageobj.CSS("a")).All(pageobj.CSS("b")).Get(3).Element(pageobj.ID("c"))
	if n := d.CallCount(""); n != 0 {
		t.Errorf("expected no driver calls, got: %d", n)
	}
	if h.Locator() != pageobj.CSS("#missing") || h.Scope() != pageobj.Document || h.Index() != -1 {
		t.Errorf("unexpected handle %v", h)
	}
}

func TestHandleOps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		op     func(context.Context, *pageobj.Handle) error
	}{
		{"State", func(ctx context.Context, h *pageobj.Handle) error {
			_, err := h.IsPresent(ctx)
			return err
		}},
		{"State", func(ctx context.Context, h *pageobj.Handle) error {
			_, err := h.IsVisible(ctx)
			return err
		}},
		{"State", func(ctx context.Context, h *pageobj.Handle) error {
			_, err := h.IsClickable(ctx)
			return err
		}},
		{"Click", func(ctx context.Context, h *pageobj.Handle) error {
			return h.Click(ctx)
		}},
		{"SendKeys", func(ctx context.Context, h *pageobj.Handle) error {
			return h.SendKeys(ctx, "john")
		}},
		{"Clear", func(ctx context.Context, h *pageobj.Handle) error {
			return h.Clear(ctx)
		}},
		{"Text", func(ctx context.Context, h *pageobj.Handle) error {
			_, err := h.Text(ctx)
			return err
		}},
		{"Attribute", func(ctx context.Context, h *pageobj.Handle) error {
			_, _, err := h.Attribute(ctx, "type")
			return err
		}},
	}

	for _, test := range tests {
		d := pageobjtest.NewDriver(loginNodes()...)
		ctx := testSession(t, d)
		h := pageobj.Document.Element(pageobj.ID("login")).Element(pageobj.Name("user"))
		if err := test.op(ctx, h); err != nil {
			t.Fatalf("%s: got error: %v", test.method, err)
		}
		calls := d.Calls()
		if len(calls) != 1 {
			t.Fatalf("%s: expected exactly one driver call, got: %v", test.method, calls)
		}
		if calls[0].Method != test.method {
			t.Errorf("expected %s, got: %v", test.method, calls[0])
		}
		if !calls[0].Path.Equal(h.Path()) {
			t.Errorf("%s: expected path %v, got: %v", test.method, h.Path(), calls[0].Path)
		}
	}
}

func TestHandleValues(t *testing.T) {
	t.Parallel()

	d := pageobjtest.NewDriver(loginNodes()...)
	ctx := testSession(t, d)
	user := pageobj.Document.Element(pageobj.Name("user"))

	if err := user.SendKeys(ctx, "john"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := user.Attribute(ctx, "value")
	if err != nil || !ok || v != "john" {
		t.Errorf("expected value john, got: %q, %t, %v", v, ok, err)
	}
	text, err := pageobj.Document.Element(pageobj.ID("submit")).Text(ctx)
	if err != nil || text != "Sign in" {
		t.Errorf("expected text Sign in, got: %q, %v", text, err)
	}
	err = pageobj.Document.Element(pageobj.ID("missing")).Click(ctx)
	if !errors.Is(err, pageobj.ErrNoSuchElement) {
		t.Errorf("expected ErrNoSuchElement, got: %v", err)
	}
}

func TestHandleDriverError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := pageobjtest.NewDriver(loginNodes()...)
	d.Fail("Click", boom)
	ctx := testSession(t, d)
	if err := pageobj.Document.Element(pageobj.ID("submit")).Click(ctx); err != boom {
		t.Errorf("expected driver error unchanged, got: %v", err)
	}
}

func TestHandleInvalidContext(t *testing.T) {
	t.Parallel()

	h := pageobj.Document.Element(pageobj.ID("submit"))
	if _, err := h.IsPresent(context.Background()); !errors.Is(err, pageobj.ErrInvalidContext) {
		t.Errorf("expected ErrInvalidContext, got: %v", err)
	}
	if err := h.Click(context.Background()); !errors.Is(err, pageobj.ErrInvalidContext) {
		t.Errorf("expected ErrInvalidContext, got: %v", err)
	}
}

func TestHandleEqual(t *testing.T) {
	t.Parallel()

	form := pageobj.Document.Element(pageobj.ID("login"))
	rows := pageobj.Document.All(pageobj.CSS(".row"))
	fn := pageobj.ContextFunc(pageobj.Document.Element)

	tests := []struct {
		a, b *pageobj.Handle
		exp  bool
	}{
		{form, pageobj.Document.Element(pageobj.ID("login")), true},
		{form.Element(pageobj.CSS("a")), pageobj.Document.Element(pageobj.ID("login")).Element(pageobj.CSS("a")), true},
		{form, pageobj.Document.Element(pageobj.ID("other")), false},
		{form, form.Element(pageobj.ID("login")), false},
		{rows.Get(1), rows.Get(1), true},
		{rows.Get(1), rows.Get(2), false},
		{rows.First(), pageobj.Document.Element(pageobj.CSS(".row")), false},
		{fn.Element(pageobj.CSS("a")), fn.Element(pageobj.CSS("a")), true},
		{fn.Element(pageobj.CSS("a")), pageobj.Document.Element(pageobj.CSS("a")), true},
		{form, nil, false},
	}
	for i, test := range tests {
		if eq := test.a.Equal(test.b); eq != test.exp {
			t.Errorf("test %d: %v equal %v: expected %t, got: %t", i, test.a, test.b, test.exp, eq)
		}
	}
}

func TestHandlePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		h   *pageobj.Handle
		exp string
	}{
		{pageobj.Document.Element(pageobj.CSS("#submit")), `css("#submit")`},
		{pageobj.Document.Element(pageobj.ID("login")).Element(pageobj.Name("user")), `id("login") > name("user")`},
		{pageobj.Document.All(pageobj.CSS(".row")).Get(2).Element(pageobj.LinkText("edit")), `css(".row")[2] > linkText("edit")`},
		{pageobj.Document.Element(pageobj.CSSContainingText("li", "x")), `cssContainingText("li", "x")`},
	}
	for _, test := range tests {
		if s := test.h.String(); s != test.exp {
			t.Errorf("expected %s, got: %s", test.exp, s)
		}
	}
}

func TestAllUnsupported(t *testing.T) {
	t.Parallel()

	d := pageobjtest.NewDriver(tableNodes()...)
	fn := pageobj.ContextFunc(func(loc pageobj.Locator) *pageobj.Handle {
		return pageobj.Document.Element(loc)
	})
	if _, err := pageobj.All(fn, pageobj.CSS(".row")); !errors.Is(err, pageobj.ErrUnsupportedOperation) {
		t.Errorf("expected ErrUnsupportedOperation, got: %v", err)
	}
	if _, err := pageobj.All(pageobj.Document, pageobj.CSS(".row")); err != nil {
		t.Errorf("expected document to support All, got: %v", err)
	}
	h := pageobj.Document.Element(pageobj.CSS("table"))
	if _, err := pageobj.All(h, pageobj.CSS(".row")); err != nil {
		t.Errorf("expected handle to support All, got: %v", err)
	}
	if n := d.CallCount(""); n != 0 {
		t.Errorf("expected no driver calls, got: %d", n)
	}
}
