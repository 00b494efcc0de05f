// Package drivertest checks that browser drivers behave the same against a
// real page.
package drivertest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/pageobj"
)

// HTML is the page served by Server.
const HTML = `
<html>
<head>
	<title>pageobj form</title>
</head>
<body>
	<form id="login" onsubmit="return false">
		<input name="user" type="text">
		<input name="pass" type="password" value="secret" oninput="document.getElementById('result').textContent = 'pass ' + this.value.length">
		<button id="submit" type="button" onclick="document.getElementById('result').textContent = 'signed in ' + document.querySelector('[name=user]').value">Sign in</button>
		<input id="send" type="submit" value="Send" disabled>
	</form>
	<p id="result"></p>
	<ul id="list">
		<li class="row">one</li>
		<li class="row" style="display: none">two</li>
		<li class="row"><a href="/three" data-kind="link">Three</a></li>
	</ul>
	<div id="second"><a href="/four">Four</a></div>
	<div style="position: relative">
		<button id="covered" type="button">Covered</button>
		<div style="position: absolute; top: 0; left: 0; width: 300px; height: 60px; background: white"></div>
	</div>
	<div id="late"></div>
	<script>
		setTimeout(() => {
			const p = document.createElement('p');
			p.id = 'delayed';
			p.textContent = 'late';
			document.getElementById('late').appendChild(p);
		}, 300);
	</script>
</body>
</html>
`

func writeHTML(content string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, strings.TrimSpace(content))
	})
}

// Server returns a server serving HTML on every path.
func Server(tb testing.TB) *httptest.Server {
	ts := httptest.NewServer(writeHTML(HTML))
	tb.Cleanup(ts.Close)
	return ts
}

func path(locs ...pageobj.Locator) pageobj.Path {
	p := make(pageobj.Path, len(locs))
	for i, l := range locs {
		p[i] = pageobj.Step{Locator: l, Index: -1}
	}
	return p
}

// Run checks d against HTML. The driver is given contexts derived from ctx.
func Run(t *testing.T, ctx context.Context, d pageobj.Driver) {
	ts := Server(t)
	if err := d.Navigate(ctx, ts.URL+"/form"); err != nil {
		t.Fatal(err)
	}

	t.Run("Location", func(t *testing.T) {
		urlstr, err := d.Location(ctx)
		if err != nil || urlstr != ts.URL+"/form" {
			t.Errorf("expected %s, got: %q, %v", ts.URL+"/form", urlstr, err)
		}
		title, err := d.Title(ctx)
		if err != nil || title != "pageobj form" {
			t.Errorf("expected title, got: %q, %v", title, err)
		}
	})

	t.Run("Count", func(t *testing.T) {
		tests := []struct {
			path pageobj.Path
			exp  int
		}{
			{path(pageobj.CSS(".row")), 3},
			{path(pageobj.ID("list"), pageobj.CSS("li")), 3},
			{path(pageobj.ID("missing"), pageobj.CSS("li")), 0},
			{path(pageobj.XPath("//li")), 3},
			{path(pageobj.ID("second"), pageobj.XPath("//a")), 2},
			{path(pageobj.ID("second"), pageobj.XPath(".//a")), 1},
			{path(pageobj.ID("list"), pageobj.XPath("li")), 3},
			{path(pageobj.Name("user")), 1},
			{path(pageobj.LinkText("Three")), 1},
			{path(pageobj.PartialLinkText("hre")), 1},
			{path(pageobj.ButtonText("Sign in")), 1},
			{path(pageobj.ButtonText("Send")), 1},
			{path(pageobj.CSSContainingText("li", "o")), 2},
		}
		for _, test := range tests {
			n, err := d.Count(ctx, test.path)
			if err != nil {
				t.Fatalf("%v: got error: %v", test.path, err)
			}
			if n != test.exp {
				t.Errorf("%v: expected %d, got: %d", test.path, test.exp, n)
			}
		}
	})

	t.Run("State", func(t *testing.T) {
		second := pageobj.Path{{Locator: pageobj.CSS(".row"), Index: 1}}
		tests := []struct {
			path                        pageobj.Path
			present, visible, clickable bool
		}{
			{path(pageobj.ID("submit")), true, true, true},
			{path(pageobj.ID("send")), true, true, false},
			{path(pageobj.ID("covered")), true, true, false},
			{second, true, false, false},
			{path(pageobj.ID("missing")), false, false, false},
		}
		for _, test := range tests {
			for st, exp := range map[pageobj.State]bool{
				pageobj.StatePresent:   test.present,
				pageobj.StateVisible:   test.visible,
				pageobj.StateClickable: test.clickable,
			} {
				ok, err := d.State(ctx, test.path, st)
				if err != nil {
					t.Fatalf("%v %v: got error: %v", test.path, st, err)
				}
				if ok != exp {
					t.Errorf("%v %v: expected %t, got: %t", test.path, st, exp, ok)
				}
			}
		}
	})

	t.Run("Interact", func(t *testing.T) {
		user := path(pageobj.Name("user"))
		if err := d.SendKeys(ctx, user, "john"); err != nil {
			t.Fatal(err)
		}
		if err := d.Click(ctx, path(pageobj.ID("submit"))); err != nil {
			t.Fatal(err)
		}
		text, err := d.Text(ctx, path(pageobj.ID("result")))
		if err != nil || text != "signed in john" {
			t.Errorf("expected result text, got: %q, %v", text, err)
		}
		pass := path(pageobj.Name("pass"))
		if err := d.Clear(ctx, pass); err != nil {
			t.Fatal(err)
		}
		text, err = d.Text(ctx, path(pageobj.ID("result")))
		if err != nil || text != "pass 0" {
			t.Errorf("expected cleared input event, got: %q, %v", text, err)
		}
		if err := d.Click(ctx, path(pageobj.ID("missing"))); !errors.Is(err, pageobj.ErrNoSuchElement) {
			t.Errorf("expected ErrNoSuchElement, got: %v", err)
		}
		if _, err := d.Text(ctx, path(pageobj.ID("missing"))); !errors.Is(err, pageobj.ErrNoSuchElement) {
			t.Errorf("expected ErrNoSuchElement, got: %v", err)
		}
	})

	t.Run("Attribute", func(t *testing.T) {
		link := path(pageobj.LinkText("Three"))
		v, ok, err := d.Attribute(ctx, link, "data-kind")
		if err != nil || !ok || v != "link" {
			t.Errorf("expected data-kind, got: %q, %t, %v", v, ok, err)
		}
		_, ok, err = d.Attribute(ctx, link, "target")
		if err != nil || ok {
			t.Errorf("expected unset attribute, got: %t, %v", ok, err)
		}
	})

	t.Run("Session", func(t *testing.T) {
		ctx, cancel := pageobj.NewContext(ctx, d,
			pageobj.WithPollInterval(20*time.Millisecond),
			pageobj.WithLogf(t.Logf),
			pageobj.WithDebugf(t.Logf),
		)
		defer cancel()

		if err := pageobj.Go(ctx, ts.URL+"/again"); err != nil {
			t.Fatal(err)
		}
		delayed := pageobj.Document.Element(pageobj.ID("late")).Element(pageobj.ID("delayed"))
		if _, err := pageobj.WaitForVisible(ctx, delayed, 5*time.Second); err != nil {
			t.Fatal(err)
		}
		text, err := delayed.Text(ctx)
		if err != nil || text != "late" {
			t.Errorf("expected late text, got: %q, %v", text, err)
		}
		hidden := pageobj.Document.All(pageobj.CSS(".row")).Get(1)
		if _, err := pageobj.WaitForVisible(ctx, hidden, 100*time.Millisecond); !errors.Is(err, pageobj.ErrTimeout) {
			t.Errorf("expected timeout, got: %v", err)
		}
	})
}
