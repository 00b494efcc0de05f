// Command pagewait navigates a browser to a page and waits for an element to
// reach a state.
//
//	pagewait --css '#results' --state visible https://example.com/search
//	pagewait --catalog pages.yaml --page login --id submit --state clickable
//
// Defaults are read from PAGEWAIT_* environment variables, which may be set
// in a .env file in the current directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chromedp/pageobj"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(os.LookupEnv, openDriver, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand(lookup func(string) (string, bool), open opener, stdout, stderr io.Writer) *cobra.Command {
	cfg := defaultConfig()
	envErr := cfg.loadEnv(lookup)

	cmd := &cobra.Command{
		Use:   "pagewait [flags] [URL]",
		Short: "Wait for an element of a web page to reach a state",
		Long: `pagewait navigates a browser to URL, or to a page of a catalog, and
waits until the element designated by --css, --xpath or --id reaches --state.
It exits with a non-zero code on timeout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			logger := newLogger(stderr, cfg.Verbose)
			err := run(cmd.Context(), cfg, args, open, logger, stdout)
			if err != nil {
				logger.Error(err)
			}
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().AddFlagSet(flagSet(&cfg))
	return cmd
}

func flagSet(cfg *config) *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.StringVar(&cfg.Driver, "driver", cfg.Driver, "browser driver: cdp, rod or playwright")
	flags.StringVar(&cfg.Remote, "remote", cfg.Remote, "devtools URL of a running browser")
	flags.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run the started browser without a window")
	flags.StringVar(&cfg.CSS, "css", "", "CSS selector of the element")
	flags.StringVar(&cfg.XPath, "xpath", "", "XPath expression of the element")
	flags.StringVar(&cfg.ID, "id", "", "ID of the element")
	flags.StringVar(&cfg.State, "state", cfg.State, "state to wait for: present, absent, visible or clickable")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "wait timeout")
	flags.DurationVar(&cfg.Interval, "interval", cfg.Interval, "poll interval")
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base of relative URLs")
	flags.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "YAML page catalog")
	flags.StringVar(&cfg.Page, "page", "", "catalog page to navigate to, replacing URL")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log driver commands")
	return flags
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// run navigates and waits as configured. A catalog page is navigated to and
// waited for before the target element.
func run(ctx context.Context, cfg config, args []string, open opener, logger logrus.FieldLogger, stdout io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	var (
		urlstr string
		at     *catalogPage
	)
	switch {
	case cfg.Page != "" && len(args) > 0:
		return errors.New("--page and URL are mutually exclusive")
	case cfg.Page != "":
		c, err := loadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}
		p, err := c.page(cfg.Page)
		if err != nil {
			return err
		}
		urlstr, at = p.URL, &p
	case len(args) > 0:
		urlstr = args[0]
	default:
		return errors.New("a URL or --page is required")
	}
	loc := cfg.locator()
	if at == nil && loc.IsZero() {
		return errors.New("one of --css, --xpath and --id is required")
	}

	d, ctx, closeFn, err := open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := pageobj.NewContext(ctx, d,
		pageobj.WithBaseURL(cfg.BaseURL),
		pageobj.WithPollInterval(cfg.Interval),
		pageobj.WithWaitTimeout(cfg.Timeout),
		pageobj.WithUntilTimeout(cfg.Timeout),
		pageobj.WithLogf(logger.Infof),
		pageobj.WithDebugf(logger.Debugf),
		pageobj.WithErrorf(logger.Errorf),
	)
	defer cancel()

	if err := pageobj.Go(ctx, urlstr); err != nil {
		return err
	}
	if at != nil {
		atLoc, _ := at.At.locator()
		h := pageobj.Document.Element(atLoc)
		if err := pageobj.WaitUntil(ctx, pageobj.Present(h), cfg.Timeout, "at", at.Name); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "at %s\n", at.Name)
	}
	if loc.IsZero() {
		return nil
	}

	h := pageobj.Document.Element(loc)
	switch cfg.State {
	case "present":
		_, err = pageobj.WaitFor(ctx, h, cfg.Timeout)
	case "absent":
		err = pageobj.WaitForNotPresent(ctx, h, cfg.Timeout)
	case "visible":
		_, err = pageobj.WaitForVisible(ctx, h, cfg.Timeout)
	case "clickable":
		_, err = pageobj.WaitForClickable(ctx, h, cfg.Timeout)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%v %s\n", loc, cfg.State)
	return nil
}
