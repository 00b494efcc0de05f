package main

import (
	"fmt"
	"time"

	"github.com/mstoykov/envconfig"

	"github.com/chromedp/pageobj"
)

// config holds the pagewait settings. Environment variables provide the
// defaults of the command line flags.
type config struct {
	Driver   string        `envconfig:"PAGEWAIT_DRIVER"`
	Remote   string        `envconfig:"PAGEWAIT_REMOTE"`
	Headless bool          `envconfig:"PAGEWAIT_HEADLESS"`
	State    string        `envconfig:"PAGEWAIT_STATE"`
	Timeout  time.Duration `envconfig:"PAGEWAIT_TIMEOUT"`
	Interval time.Duration `envconfig:"PAGEWAIT_INTERVAL"`
	BaseURL  string        `envconfig:"PAGEWAIT_BASE_URL"`
	Catalog  string        `envconfig:"PAGEWAIT_CATALOG"`
	Verbose  bool          `envconfig:"PAGEWAIT_VERBOSE"`

	// Set by flags only.
	CSS   string `ignored:"true"`
	XPath string `ignored:"true"`
	ID    string `ignored:"true"`
	Page  string `ignored:"true"`
}

func defaultConfig() config {
	return config{
		Driver:   "cdp",
		Headless: true,
		State:    "present",
		Timeout:  pageobj.DefaultWaitTimeout,
		Interval: pageobj.DefaultPollInterval,
	}
}

// loadEnv overrides c with the PAGEWAIT_* variables found by lookup.
func (c *config) loadEnv(lookup func(string) (string, bool)) error {
	if err := envconfig.Process("", c, lookup); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

func (c config) validate() error {
	switch c.Driver {
	case "cdp", "rod", "playwright":
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	switch c.State {
	case "present", "absent", "visible", "clickable":
	default:
		return fmt.Errorf("unknown state %q", c.State)
	}
	n := 0
	for _, s := range []string{c.CSS, c.XPath, c.ID} {
		if s != "" {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("only one of --css, --xpath and --id can be set")
	}
	if c.Page != "" && c.Catalog == "" {
		return fmt.Errorf("--page requires --catalog")
	}
	return nil
}

// locator returns the target locator, which is zero when none was set.
func (c config) locator() pageobj.Locator {
	switch {
	case c.CSS != "":
		return pageobj.CSS(c.CSS)
	case c.XPath != "":
		return pageobj.XPath(c.XPath)
	case c.ID != "":
		return pageobj.ID(c.ID)
	}
	return pageobj.Locator{}
}
