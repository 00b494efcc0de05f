package pwdriver

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/chromedp/pageobj/internal/drivertest"
)

// browser is nil unless PAGEOBJ_TEST_PLAYWRIGHT is set, since playwright
// needs its driver and browsers installed.
var browser playwright.Browser

func testPage(t *testing.T) playwright.Page {
	if browser == nil {
		t.Skip("set PAGEOBJ_TEST_PLAYWRIGHT to run playwright tests")
	}
	page, err := browser.NewPage()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, page.Close())
	})
	return page
}

func TestMain(m *testing.M) {
	if v := os.Getenv("PAGEOBJ_TEST_PLAYWRIGHT"); v == "" || v == "false" {
		os.Exit(m.Run())
	}

	pw, err := playwright.Run()
	if err != nil {
		panic(err)
	}
	browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()

	browser.Close()
	pw.Stop()
	os.Exit(code)
}

func TestDriver(t *testing.T) {
	d := New(testPage(t), WithPollInterval(20*time.Millisecond))
	drivertest.Run(t, context.Background(), d)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(nil)
	_, err := d.Eval(ctx, "1")
	require.ErrorIs(t, err, context.Canceled)
	_, err = d.Location(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, d.Navigate(ctx, "about:blank"), context.Canceled)
}

func TestOptions(t *testing.T) {
	d := New(nil, WithPollInterval(time.Second))
	require.Equal(t, time.Second, d.PollInterval())
	require.Nil(t, d.Page())
}
