// Package cdpdriver implements pageobj.Driver on top of chromedp.
//
// The driver runs every command on the chromedp context carried by the
// context it is given, so a session is layered on a chromedp context:
//
//	ctx, cancel := chromedp.NewContext(context.Background())
//	defer cancel()
//	ctx, cancel = pageobj.NewContext(ctx, cdpdriver.New())
//	defer cancel()
package cdpdriver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/internal/script"
)

// Driver is a pageobj.Driver sending commands to a browser through chromedp.
type Driver struct {
	interval time.Duration
}

// Option is a driver option.
type Option = func(*Driver)

// WithPollInterval is a driver option to set the interval between two checks
// of a condition.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Driver) { d.interval = interval }
}

// New creates a driver.
func New(opts ...Option) *Driver {
	d := &Driver{}
	for _, o := range opts {
		o(d)
	}
	return d
}

// PollInterval satisfies the pageobj.IntervalDriver interface.
func (d *Driver) PollInterval() time.Duration {
	return d.interval
}

func run(ctx context.Context, actions ...chromedp.Action) error {
	if chromedp.FromContext(ctx) == nil {
		return chromedp.ErrInvalidContext
	}
	return chromedp.Run(ctx, actions...)
}

// Eval satisfies the script.Evaluator interface.
func (d *Driver) Eval(ctx context.Context, expr string) (string, error) {
	var res string
	err := run(ctx, chromedp.Evaluate(expr, &res))
	var exc *runtime.ExceptionDetails
	if errors.As(err, &exc) {
		return "", fmt.Errorf("script error: %w", exc)
	}
	return res, err
}

// Count satisfies the pageobj.Driver interface.
func (d *Driver) Count(ctx context.Context, p pageobj.Path) (int, error) {
	return script.Count(ctx, d, p)
}

// State satisfies the pageobj.Driver interface.
func (d *Driver) State(ctx context.Context, p pageobj.Path, st pageobj.State) (bool, error) {
	return script.State(ctx, d, p, st)
}

// Navigate satisfies the pageobj.Driver interface.
func (d *Driver) Navigate(ctx context.Context, urlstr string) error {
	return run(ctx, chromedp.Navigate(urlstr))
}

// Location satisfies the pageobj.Driver interface.
func (d *Driver) Location(ctx context.Context) (string, error) {
	var urlstr string
	err := run(ctx, chromedp.Location(&urlstr))
	return urlstr, err
}

// Title satisfies the pageobj.Driver interface.
func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := run(ctx, chromedp.Title(&title))
	return title, err
}

// query runs a chromedp query action on the element at p. The element is
// checked for presence first, since chromedp queries wait for their element.
func (d *Driver) query(ctx context.Context, p pageobj.Path, action func(sel string) chromedp.Action) error {
	ok, err := script.Present(ctx, d, p)
	switch {
	case err != nil:
		return err
	case !ok:
		return fmt.Errorf("%w: %v", pageobj.ErrNoSuchElement, p)
	}
	return run(ctx, action(script.Element(p)))
}

// Click satisfies the pageobj.Driver interface.
func (d *Driver) Click(ctx context.Context, p pageobj.Path) error {
	return d.query(ctx, p, func(sel string) chromedp.Action {
		return chromedp.Click(sel, chromedp.ByJSPath, chromedp.NodeReady)
	})
}

// SendKeys satisfies the pageobj.Driver interface.
func (d *Driver) SendKeys(ctx context.Context, p pageobj.Path, keys string) error {
	return d.query(ctx, p, func(sel string) chromedp.Action {
		return chromedp.SendKeys(sel, keys, chromedp.ByJSPath, chromedp.NodeReady)
	})
}

// Clear satisfies the pageobj.Driver interface.
func (d *Driver) Clear(ctx context.Context, p pageobj.Path) error {
	return script.Clear(ctx, d, p)
}

// Text satisfies the pageobj.Driver interface.
func (d *Driver) Text(ctx context.Context, p pageobj.Path) (string, error) {
	return script.Text(ctx, d, p)
}

// Attribute satisfies the pageobj.Driver interface.
func (d *Driver) Attribute(ctx context.Context, p pageobj.Path, name string) (string, bool, error) {
	return script.Attribute(ctx, d, p, name)
}
