package main

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/chromedp/pageobj"
	"github.com/chromedp/pageobj/cdpdriver"
	"github.com/chromedp/pageobj/pwdriver"
	"github.com/chromedp/pageobj/roddriver"
)

// opener starts a browser and returns a driver for one of its pages. The
// returned context is the one the driver must be used with.
type opener func(ctx context.Context, cfg config, logger logrus.FieldLogger) (pageobj.Driver, context.Context, func(), error)

func openDriver(ctx context.Context, cfg config, logger logrus.FieldLogger) (pageobj.Driver, context.Context, func(), error) {
	switch cfg.Driver {
	case "cdp":
		return openCDP(ctx, cfg, logger)
	case "rod":
		return openRod(ctx, cfg)
	case "playwright":
		return openPlaywright(ctx, cfg)
	}
	return nil, nil, nil, fmt.Errorf("unknown driver %q", cfg.Driver)
}

func openCDP(ctx context.Context, cfg config, logger logrus.FieldLogger) (pageobj.Driver, context.Context, func(), error) {
	ctx, cancel := cdpdriver.NewBrowser(ctx, cdpdriver.BrowserOptions{
		RemoteURL: cfg.Remote,
		Headless:  cfg.Headless,
		Logf:      logger.Infof,
		Debugf:    logger.Debugf,
		Errorf:    logger.Errorf,
	})
	return cdpdriver.New(cdpdriver.WithPollInterval(cfg.Interval)), ctx, cancel, nil
}

func openRod(ctx context.Context, cfg config) (pageobj.Driver, context.Context, func(), error) {
	var l *launcher.Launcher
	u := cfg.Remote
	if u == "" {
		l = launcher.New().Context(ctx).Headless(cfg.Headless)
		var err error
		if u, err = l.Launch(); err != nil {
			return nil, nil, nil, fmt.Errorf("could not launch browser: %w", err)
		}
	}
	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to browser: %w", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		return nil, nil, nil, err
	}
	closeFn := func() {
		if l == nil {
			page.Close()
			return
		}
		browser.Close()
		l.Cleanup()
	}
	return roddriver.New(page, roddriver.WithPollInterval(cfg.Interval)), ctx, closeFn, nil
}

func openPlaywright(ctx context.Context, cfg config) (pageobj.Driver, context.Context, func(), error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start playwright: %w", err)
	}
	var browser playwright.Browser
	if cfg.Remote != "" {
		browser, err = pw.Chromium.ConnectOverCDP(cfg.Remote)
	} else {
		browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(cfg.Headless),
		})
	}
	if err != nil {
		pw.Stop()
		return nil, nil, nil, fmt.Errorf("could not open browser: %w", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, nil, nil, err
	}
	closeFn := func() {
		browser.Close()
		pw.Stop()
	}
	return pwdriver.New(page, pwdriver.WithPollInterval(cfg.Interval)), ctx, closeFn, nil
}
