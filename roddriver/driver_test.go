package roddriver

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/chromedp/pageobj/internal/drivertest"
)

// browser is nil when no browser could be found.
var browser *rod.Browser

func testPage(tb testing.TB) *rod.Page {
	if browser == nil {
		tb.Skip("no browser found; set PAGEOBJ_TEST_CHROME")
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		if err := page.Close(); err != nil {
			tb.Error(err)
		}
	})
	return page
}

func TestMain(m *testing.M) {
	bin := os.Getenv("PAGEOBJ_TEST_CHROME")
	if bin == "" {
		bin, _ = launcher.LookPath()
	}
	if bin == "" {
		os.Exit(m.Run())
	}

	l := launcher.New().
		Bin(bin).
		Headless(true).
		NoSandbox(os.Getenv("PAGEOBJ_NO_SANDBOX") != "false")
	u, err := l.Launch()
	if err != nil {
		panic(err)
	}
	browser = rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		panic(err)
	}

	code := m.Run()

	browser.Close()
	l.Cleanup()
	os.Exit(code)
}

func TestDriver(t *testing.T) {
	t.Parallel()

	d := New(testPage(t), WithPollInterval(20*time.Millisecond))
	drivertest.Run(t, context.Background(), d)
}

func TestScriptError(t *testing.T) {
	t.Parallel()

	d := New(testPage(t))
	if _, err := d.Eval(context.Background(), `(() => { throw new Error("boom") })()`); err == nil {
		t.Fatal("expected error")
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	d := New(nil, WithPollInterval(time.Second))
	if d.PollInterval() != time.Second || d.Page() != nil {
		t.Errorf("unexpected driver %+v", d)
	}
}
