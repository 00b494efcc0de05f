package pageobj_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/pageobjtest"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	if s := pageobj.FromContext(context.Background()); s != nil {
		t.Errorf("expected no session, got: %v", s)
	}

	d := pageobjtest.NewDriver()
	ctx, cancel := pageobj.NewContext(context.Background(), d)
	s := pageobj.FromContext(ctx)
	if s == nil || s.Driver != d {
		t.Fatalf("expected session on the driver, got: %v", s)
	}
	if s.WaitTimeout() != pageobj.DefaultWaitTimeout {
		t.Errorf("expected default wait timeout, got: %v", s.WaitTimeout())
	}
	cancel()
	if _, err := pageobj.Location(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestNewContextNilDriver(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	pageobj.NewContext(context.Background(), nil)
}

func TestPollInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		driver time.Duration
		opts   []pageobj.SessionOption
		want   time.Duration
	}{
		{"Default", 0, nil, pageobj.DefaultPollInterval},
		{"Driver", 250 * time.Millisecond, nil, 250 * time.Millisecond},
		{"Option", 0, []pageobj.SessionOption{pageobj.WithPollInterval(time.Second)}, time.Second},
		{"OptionOverDriver", 250 * time.Millisecond, []pageobj.SessionOption{pageobj.WithPollInterval(time.Second)}, time.Second},
	}
	for _, test := range tests {
		d := pageobjtest.NewDriver()
		d.SetPollInterval(test.driver)
		ctx := testSession(t, d, test.opts...)
		if got := pageobj.FromContext(ctx).PollInterval(); got != test.want {
			t.Errorf("%s: expected %v, got: %v", test.name, test.want, got)
		}
	}
}

func TestDefaultTimeouts(t *testing.T) {
	t.Parallel()

	d := pageobjtest.NewDriver()
	ctx := testSession(t, d,
		pageobj.WithPollInterval(time.Millisecond),
		pageobj.WithWaitTimeout(20*time.Millisecond),
		pageobj.WithUntilTimeout(30*time.Millisecond),
	)

	h := pageobj.Document.Element(pageobj.ID("missing"))
	_, err := pageobj.WaitFor(ctx, h, 0)
	if terr, ok := err.(*pageobj.TimeoutError); !ok || terr.Timeout != 20*time.Millisecond {
		t.Errorf("expected wait timeout of 20ms, got: %v", err)
	}
	err = pageobj.WaitUntil(ctx, pageobj.Present(h), -1)
	if terr, ok := err.(*pageobj.TimeoutError); !ok || terr.Timeout != 30*time.Millisecond {
		t.Errorf("expected until timeout of 30ms, got: %v", err)
	}
}

// serialDriver fails the test when two calls are in flight at once.
type serialDriver struct {
	*pageobjtest.Driver
	tb       testing.TB
	inflight int32
}

func (d *serialDriver) State(ctx context.Context, p pageobj.Path, st pageobj.State) (bool, error) {
	if n := atomic.AddInt32(&d.inflight, 1); n != 1 {
		d.tb.Errorf("%d calls in flight", n)
	}
	defer atomic.AddInt32(&d.inflight, -1)
	time.Sleep(time.Millisecond)
	return d.Driver.State(ctx, p, st)
}

func TestSerializedCalls(t *testing.T) {
	t.Parallel()

	d := &serialDriver{Driver: pageobjtest.NewDriver(tableNodes()...), tb: t}
	ctx := testSession(t, d)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		h := pageobj.Document.All(pageobj.CSS(".row")).Get(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, err := h.IsVisible(ctx); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	if n := d.CallCount("State"); n != 15 {
		t.Errorf("expected 15 calls, got: %d", n)
	}
}
