// Package pwdriver implements pageobj.Driver on top of a playwright page.
//
// Playwright calls cannot be cancelled, so contexts are only checked before
// each call.
package pwdriver

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/internal/script"
)

// Driver is a pageobj.Driver sending commands to a single playwright page.
type Driver struct {
	page     playwright.Page
	interval time.Duration
}

// Option is a driver option.
type Option = func(*Driver)

// WithPollInterval is a driver option to set the interval between two checks
// of a condition.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Driver) { d.interval = interval }
}

// New creates a driver for page.
func New(page playwright.Page, opts ...Option) *Driver {
	d := &Driver{page: page}
	for _, o := range opts {
		o(d)
	}
	return d
}

// PollInterval satisfies the pageobj.IntervalDriver interface.
func (d *Driver) PollInterval() time.Duration {
	return d.interval
}

// Page returns the page the driver was created for.
func (d *Driver) Page() playwright.Page {
	return d.page
}

// Eval satisfies the script.Evaluator interface.
func (d *Driver) Eval(ctx context.Context, expr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := d.page.Evaluate(expr)
	if err != nil {
		return "", fmt.Errorf("script error: %w", err)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected script result of type %T", v)
	}
	return s, nil
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
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if deadline, ok := ctx.Deadline(); ok {
		opts.Timeout = playwright.Float(float64(time.Until(deadline).Milliseconds()))
	}
	_, err := d.page.Goto(urlstr, opts)
	return err
}

// Location satisfies the pageobj.Driver interface.
func (d *Driver) Location(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.URL(), nil
}

// Title satisfies the pageobj.Driver interface.
func (d *Driver) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.Title()
}

// element runs f on the element at p.
func (d *Driver) element(ctx context.Context, p pageobj.Path, f func(playwright.ElementHandle) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h, err := d.page.EvaluateHandle(script.Element(p))
	if err != nil {
		return fmt.Errorf("script error: %w", err)
	}
	defer h.Dispose()
	el := h.AsElement()
	if el == nil {
		return fmt.Errorf("%w: %v", pageobj.ErrNoSuchElement, p)
	}
	return f(el)
}

// Click satisfies the pageobj.Driver interface.
func (d *Driver) Click(ctx context.Context, p pageobj.Path) error {
	return d.element(ctx, p, func(el playwright.ElementHandle) error {
		return el.Click()
	})
}

// SendKeys satisfies the pageobj.Driver interface.
func (d *Driver) SendKeys(ctx context.Context, p pageobj.Path, keys string) error {
	return d.element(ctx, p, func(el playwright.ElementHandle) error {
		return el.Type(keys)
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
