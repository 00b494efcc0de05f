package pageobj_test

import (
	"context"
	"testing"

	"go.uber.org/goleak"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/pageobjtest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started by klog, which the poller depends on
		goleak.IgnoreTopFunction("k8s.io/klog/v2.(*flushDaemon).run.func1"),
	)
}

// testSession returns a context with a session on d, logging to t.
func testSession(tb testing.TB, d pageobj.Driver, opts ...pageobj.SessionOption) context.Context {
	tb.Helper()
	opts = append([]pageobj.SessionOption{
		pageobj.WithLogf(tb.Logf),
		pageobj.WithDebugf(tb.Logf),
		pageobj.WithErrorf(tb.Logf),
	}, opts...)
	ctx, cancel := pageobj.NewContext(context.Background(), d, opts...)
	tb.Cleanup(cancel)
	return ctx
}

type SubmitButton struct{ pageobj.Base }

func (SubmitButton) DefaultLocator() pageobj.Locator { return pageobj.CSS("#submit") }

type Row struct{ pageobj.Base }

func (Row) DefaultLocator() pageobj.Locator { return pageobj.CSS(".row") }

func (r *Row) Link() *pageobj.Handle {
	return r.Element(pageobj.CSS("a"))
}

func (r *Row) Cells() *pageobj.ElementSet {
	return r.All(pageobj.CSS("td"))
}

// Widget declares no default locator.
type Widget struct{ pageobj.Base }

type LoginPage struct{ pageobj.Page }

func (LoginPage) URL() string { return "/login" }

func (LoginPage) IsAt(ctx context.Context) (bool, error) {
	return pageobj.Document.Element(pageobj.ID("login")).IsPresent(ctx)
}

func (p *LoginPage) User() *pageobj.Handle {
	return p.Element(pageobj.Name("user"))
}

func (p *LoginPage) Submit() *pageobj.Handle {
	return p.Element(pageobj.CSS("#submit"))
}

// HomePage declares no URL.
type HomePage struct{ pageobj.Page }

func (HomePage) URL() string { return "" }

func (HomePage) IsAt(ctx context.Context) (bool, error) {
	return pageobj.Document.Element(pageobj.ID("home")).IsPresent(ctx)
}

func loginNodes() []*pageobjtest.Node {
	return []*pageobjtest.Node{
		{Tag: "form", ID: "login", Children: []*pageobjtest.Node{
			{Tag: "input", Name: "user", Type: "text"},
			{Tag: "button", ID: "submit", Text: "Sign in"},
		}},
	}
}

func tableNodes() []*pageobjtest.Node {
	row := func(text string, hidden bool) *pageobjtest.Node {
		return &pageobjtest.Node{Tag: "tr", Class: "row", Hidden: hidden, Children: []*pageobjtest.Node{
			{Tag: "td", Text: text},
			{Tag: "td", Children: []*pageobjtest.Node{
				{Tag: "a", Text: "edit " + text},
			}},
		}}
	}
	return []*pageobjtest.Node{
		pageobjtest.Elem("table", row("one", false), row("two", true), row("three", false)),
	}
}
