package cdpdriver

import (
	"context"

	"github.com/chromedp/chromedp"
)

// BrowserOptions are the options of NewBrowser.
type BrowserOptions struct {
	// RemoteURL is the devtools websocket URL of an already running
	// browser. When empty, a local browser is started.
	RemoteURL string

	// ExecPath is the browser to start. When empty, chromedp looks for a
	// Chrome or Chromium install.
	ExecPath string

	// Headless runs the started browser without a window.
	Headless bool

	// NoSandbox disables the browser sandbox, which is required when running
	// as root in containers.
	NoSandbox bool

	// Logf, Debugf and Errorf receive the chromedp logs.
	Logf, Debugf, Errorf func(string, ...interface{})
}

// NewBrowser returns a chromedp context on a new tab of a browser, started
// locally or connected to with opts.RemoteURL. Cancelling the context closes
// the tab and, for a local browser, the browser.
func NewBrowser(parent context.Context, opts BrowserOptions) (context.Context, context.CancelFunc) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if opts.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(parent, opts.RemoteURL)
	} else {
		allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if opts.ExecPath != "" {
			allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
		}
		allocOpts = append(allocOpts,
			chromedp.Flag("headless", opts.Headless),
			// disabling the GPU helps portability with some systems
			chromedp.DisableGPU,
		)
		if opts.NoSandbox {
			allocOpts = append(allocOpts, chromedp.NoSandbox)
		}
		allocCtx, allocCancel = chromedp.NewExecAllocator(parent, allocOpts...)
	}

	var ctxOpts []chromedp.ContextOption
	if opts.Logf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(opts.Logf))
	}
	if opts.Debugf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithDebugf(opts.Debugf))
	}
	if opts.Errorf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithErrorf(opts.Errorf))
	}
	ctx, cancel := chromedp.NewContext(allocCtx, ctxOpts...)
	return ctx, func() {
		cancel()
		allocCancel()
	}
}
