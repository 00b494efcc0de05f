// Package pageobjtest provides an in-memory pageobj.Driver for tests.
//
// The driver holds an HTML document, built from Nodes or parsed from markup,
// and resolves the locators of the pageobj package against it: css selectors
// with cascadia, xpath expressions with htmlquery, and the text based
// strategies with goquery. Visibility is derived from the hidden attribute
// and inline display and visibility styles.
package pageobjtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/antchfx/htmlquery"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html"

	"github.com/chromedp/pageobj"
)

// Call is a call made to the driver.
type Call struct {
	Method string
	Path   pageobj.Path
	Arg    string
}

// String satisfies fmt.Stringer.
func (c Call) String() string {
	s := c.Method
	if c.Path != nil {
		s += " " + c.Path.String()
	}
	if c.Arg != "" {
		s += fmt.Sprintf(" %q", c.Arg)
	}
	return s
}

type route struct {
	title string
	nodes func() []*Node
	src   string
}

// Driver is an in-memory pageobj.Driver. It is safe for concurrent use.
type Driver struct {
	mu       sync.Mutex
	nodes    []*Node
	doc      *html.Node
	src      map[*html.Node]*Node
	url      string
	title    string
	routes   map[string]route
	calls    []Call
	errs     map[string]error
	hook     func(Call)
	interval time.Duration
}

// NewDriver creates a driver whose document holds nodes.
func NewDriver(nodes ...*Node) *Driver {
	d := &Driver{
		url:    "about:blank",
		routes: make(map[string]route),
		errs:   make(map[string]error),
	}
	d.setNodes(nodes)
	return d
}

func (d *Driver) setNodes(nodes []*Node) {
	d.nodes = nodes
	d.render()
}

func (d *Driver) render() {
	d.doc = &html.Node{Type: html.DocumentNode}
	d.src = make(map[*html.Node]*Node)
	for _, n := range d.nodes {
		d.doc.AppendChild(n.render(d.src))
	}
}

func (d *Driver) setHTML(src string) error {
	doc, err := htmlquery.Parse(strings.NewReader(src))
	if err != nil {
		return err
	}
	d.nodes, d.doc, d.src = nil, doc, nil
	return nil
}

// SetNodes replaces the content of the document.
func (d *Driver) SetNodes(nodes ...*Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setNodes(nodes)
}

// SetHTML replaces the document with the parsed markup of src.
func (d *Driver) SetHTML(src string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setHTML(src)
}

// Update calls f with the driver locked, so that f can safely change the
// nodes passed to the driver, and renders the document again.
func (d *Driver) Update(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f()
	if d.src != nil {
		d.render()
	}
}

// Route makes navigating to urlstr load a document titled title, holding the
// nodes returned by nodes. Navigating to an unknown URL loads an empty
// document.
func (d *Driver) Route(urlstr, title string, nodes func() []*Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[urlstr] = route{title: title, nodes: nodes}
}

// RouteHTML makes navigating to urlstr load the markup of src. The title is
// taken from the title element.
func (d *Driver) RouteHTML(urlstr, src string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[urlstr] = route{src: src}
}

// Fail makes every subsequent call to method return err. A nil err restores
// normal operation.
func (d *Driver) Fail(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.errs, method)
		return
	}
	d.errs[method] = err
}

// OnCall sets a func called after every call, once the driver is unlocked.
func (d *Driver) OnCall(f func(Call)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hook = f
}

// SetPollInterval sets the interval reported to the session.
func (d *Driver) SetPollInterval(interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interval = interval
}

// PollInterval satisfies the pageobj.IntervalDriver interface.
func (d *Driver) PollInterval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.interval
}

// Calls returns the calls made so far.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.calls)
}

// CallCount returns the number of calls made so far to method, or to any
// method when method is empty.
func (d *Driver) CallCount(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	var n int
	for _, c := range d.calls {
		if method == "" || c.Method == method {
			n++
		}
	}
	return n
}

// ResetCalls forgets the calls made so far.
func (d *Driver) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// call records c and runs f with the driver locked. The hook and the func
// returned by f, if any, run after the driver is unlocked.
func (d *Driver) call(ctx context.Context, c Call, f func() (func(), error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	d.calls = append(d.calls, c)
	hook := d.hook
	err := d.errs[c.Method]
	var post func()
	if err == nil {
		post, err = f()
	}
	d.mu.Unlock()
	if post != nil {
		post()
	}
	if hook != nil {
		hook(c)
	}
	return err
}

// resolve returns the element at p, or nil.
func (d *Driver) resolve(p pageobj.Path) (*html.Node, error) {
	n := d.doc
	for _, s := range p {
		nodes, err := query(n, s.Locator)
		if err != nil {
			return nil, err
		}
		i := s.Index
		if i < 0 {
			i = 0
		}
		if i >= len(nodes) {
			return nil, nil
		}
		n = nodes[i]
	}
	return n, nil
}

func (d *Driver) element(p pageobj.Path) (*html.Node, error) {
	n, err := d.resolve(p)
	switch {
	case err != nil:
		return nil, err
	case n == nil || len(p) == 0:
		return nil, fmt.Errorf("%w: %v", pageobj.ErrNoSuchElement, p)
	}
	return n, nil
}

// Count satisfies the pageobj.Driver interface.
func (d *Driver) Count(ctx context.Context, p pageobj.Path) (int, error) {
	var count int
	err := d.call(ctx, Call{Method: "Count", Path: p}, func() (func(), error) {
		if len(p) == 0 {
			return nil, fmt.Errorf("cannot count an empty path")
		}
		scope, err := d.resolve(p[:len(p)-1])
		if err != nil || scope == nil {
			return nil, err
		}
		nodes, err := query(scope, p[len(p)-1].Locator)
		count = len(nodes)
		return nil, err
	})
	return count, err
}

// State satisfies the pageobj.Driver interface.
func (d *Driver) State(ctx context.Context, p pageobj.Path, st pageobj.State) (bool, error) {
	var ok bool
	err := d.call(ctx, Call{Method: "State", Path: p, Arg: st.String()}, func() (func(), error) {
		n, err := d.resolve(p)
		if err != nil || n == nil {
			return nil, err
		}
		switch st {
		case pageobj.StatePresent:
			ok = true
		case pageobj.StateVisible:
			ok = visible(n)
		case pageobj.StateClickable:
			ok = d.clickable(n)
		default:
			return nil, fmt.Errorf("unknown element state %v", st)
		}
		return nil, nil
	})
	return ok, err
}

// Navigate satisfies the pageobj.Driver interface.
func (d *Driver) Navigate(ctx context.Context, urlstr string) error {
	return d.call(ctx, Call{Method: "Navigate", Arg: urlstr}, func() (func(), error) {
		d.url = urlstr
		r, ok := d.routes[urlstr]
		if !ok {
			d.title = ""
			d.setNodes(nil)
			return nil, nil
		}
		if r.nodes == nil && r.src != "" {
			if err := d.setHTML(r.src); err != nil {
				return nil, err
			}
			d.title = ""
			if t := htmlquery.FindOne(d.doc, "//title"); t != nil {
				d.title = strings.TrimSpace(htmlquery.InnerText(t))
			}
			return nil, nil
		}
		d.title = r.title
		var nodes []*Node
		if r.nodes != nil {
			nodes = r.nodes()
		}
		d.setNodes(nodes)
		return nil, nil
	})
}

// Location satisfies the pageobj.Driver interface.
func (d *Driver) Location(ctx context.Context) (string, error) {
	var urlstr string
	err := d.call(ctx, Call{Method: "Location"}, func() (func(), error) {
		urlstr = d.url
		return nil, nil
	})
	return urlstr, err
}

// Title satisfies the pageobj.Driver interface.
func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.call(ctx, Call{Method: "Title"}, func() (func(), error) {
		title = d.title
		return nil, nil
	})
	return title, err
}

// Click satisfies the pageobj.Driver interface.
func (d *Driver) Click(ctx context.Context, p pageobj.Path) error {
	return d.call(ctx, Call{Method: "Click", Path: p}, func() (func(), error) {
		n, err := d.element(p)
		if err != nil {
			return nil, err
		}
		if src := d.src[n]; src != nil {
			return src.OnClick, nil
		}
		return nil, nil
	})
}

// SendKeys satisfies the pageobj.Driver interface. The keys are appended to
// the value of the element.
func (d *Driver) SendKeys(ctx context.Context, p pageobj.Path, keys string) error {
	return d.call(ctx, Call{Method: "SendKeys", Path: p, Arg: keys}, func() (func(), error) {
		n, err := d.element(p)
		if err != nil {
			return nil, err
		}
		value, _ := attr(n, "value")
		d.setValue(n, value+keys)
		return nil, nil
	})
}

// Clear satisfies the pageobj.Driver interface.
func (d *Driver) Clear(ctx context.Context, p pageobj.Path) error {
	return d.call(ctx, Call{Method: "Clear", Path: p}, func() (func(), error) {
		n, err := d.element(p)
		if err != nil {
			return nil, err
		}
		d.setValue(n, "")
		return nil, nil
	})
}

// Text satisfies the pageobj.Driver interface.
func (d *Driver) Text(ctx context.Context, p pageobj.Path) (string, error) {
	var text string
	err := d.call(ctx, Call{Method: "Text", Path: p}, func() (func(), error) {
		n, err := d.element(p)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(htmlquery.InnerText(n))
		return nil, nil
	})
	return text, err
}

// Attribute satisfies the pageobj.Driver interface.
func (d *Driver) Attribute(ctx context.Context, p pageobj.Path, name string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := d.call(ctx, Call{Method: "Attribute", Path: p, Arg: name}, func() (func(), error) {
		n, err := d.element(p)
		if err != nil {
			return nil, err
		}
		value, ok = attr(n, name)
		return nil, nil
	})
	return value, ok, err
}

// setValue sets the value of n, keeping the node it was rendered from in
// sync so that the value survives an Update.
func (d *Driver) setValue(n *html.Node, value string) {
	setAttr(n, "value", value)
	if src := d.src[n]; src != nil {
		src.Value = value
	}
}

func (d *Driver) clickable(n *html.Node) bool {
	if !visible(n) {
		return false
	}
	if _, ok := attr(n, "disabled"); ok {
		return false
	}
	src := d.src[n]
	return src == nil || !src.Obscured
}

// visible reports whether neither n nor any of its ancestors is hidden.
func visible(n *html.Node) bool {
	if typ, _ := attr(n, "type"); n.Data == "input" && strings.EqualFold(typ, "hidden") {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if _, ok := attr(n, "hidden"); ok {
			return false
		}
		style, _ := attr(n, "style")
		style = strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}
