// Package roddriver implements pageobj.Driver on top of a go-rod page.
package roddriver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/internal/script"
)

// Driver is a pageobj.Driver sending commands to a single rod page.
type Driver struct {
	page     *rod.Page
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
func New(page *rod.Page, opts ...Option) *Driver {
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
func (d *Driver) Page() *rod.Page {
	return d.page
}

// Eval satisfies the script.Evaluator interface.
func (d *Driver) Eval(ctx context.Context, expr string) (string, error) {
	res, err := d.page.Context(ctx).Eval("() => (" + expr + ")")
	var evalErr *rod.EvalError
	switch {
	case errors.As(err, &evalErr):
		return "", fmt.Errorf("script error: %w", err)
	case err != nil:
		return "", err
	}
	return res.Value.Str(), nil
}

// Count satisfies the pageobj.Driver interface.
func (d *Driver) Count(ctx context.Context, p pageobj.Path) (int, error) {
	return script.Count(ctx, d, p)
}

// State satisfies the pageobj.Driver interface.
func (d *Driver) State(ctx context.Context, p pageobj.Path, st pageobj.State) (bool, error) {
	return script.State(ctx, d, p, st)
}

// Navigate satisfies the pageobj.Driver interface. It returns once the page
// is loaded.
func (d *Driver) Navigate(ctx context.Context, urlstr string) error {
	page := d.page.Context(ctx)
	if err := page.Navigate(urlstr); err != nil {
		return err
	}
	return page.WaitLoad()
}

// Location satisfies the pageobj.Driver interface.
func (d *Driver) Location(ctx context.Context) (string, error) {
	info, err := d.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// Title satisfies the pageobj.Driver interface.
func (d *Driver) Title(ctx context.Context) (string, error) {
	info, err := d.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// element returns the element at p without waiting for it.
func (d *Driver) element(ctx context.Context, p pageobj.Path) (*rod.Element, error) {
	page := d.page.Context(ctx).Sleeper(rod.NotFoundSleeper)
	el, err := page.ElementByJS(rod.Eval(script.Element(p)))
	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return nil, fmt.Errorf("%w: %v", pageobj.ErrNoSuchElement, p)
	}
	return el, err
}

// Click satisfies the pageobj.Driver interface.
func (d *Driver) Click(ctx context.Context, p pageobj.Path) error {
	el, err := d.element(ctx, p)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// SendKeys satisfies the pageobj.Driver interface.
func (d *Driver) SendKeys(ctx context.Context, p pageobj.Path, keys string) error {
	el, err := d.element(ctx, p)
	if err != nil {
		return err
	}
	return el.Input(keys)
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
