package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chromedp/pageobj"
)

// catalog is a YAML list of pages:
//
//	pages:
//	  - name: login
//	    url: /login
//	    at:
//	      css: form#login
type catalog struct {
	Pages []catalogPage `yaml:"pages"`
}

type catalogPage struct {
	Name string        `yaml:"name"`
	URL  string        `yaml:"url"`
	At   locatorConfig `yaml:"at"`
}

// locatorConfig is a locator with exactly one strategy set.
type locatorConfig struct {
	CSS             string `yaml:"css"`
	ID              string `yaml:"id"`
	XPath           string `yaml:"xpath"`
	Name            string `yaml:"name"`
	LinkText        string `yaml:"linkText"`
	PartialLinkText string `yaml:"partialLinkText"`
	ButtonText      string `yaml:"buttonText"`
	Containing      string `yaml:"containing"`
}

func (s locatorConfig) locator() (pageobj.Locator, error) {
	var locs []pageobj.Locator
	add := func(v string, f func(string) pageobj.Locator) {
		if v != "" {
			locs = append(locs, f(v))
		}
	}
	if s.Containing != "" {
		if s.CSS == "" {
			return pageobj.Locator{}, fmt.Errorf("containing requires css")
		}
		locs = append(locs, pageobj.CSSContainingText(s.CSS, s.Containing))
	} else {
		add(s.CSS, pageobj.CSS)
	}
	add(s.ID, pageobj.ID)
	add(s.XPath, pageobj.XPath)
	add(s.Name, pageobj.Name)
	add(s.LinkText, pageobj.LinkText)
	add(s.PartialLinkText, pageobj.PartialLinkText)
	add(s.ButtonText, pageobj.ButtonText)
	if len(locs) != 1 {
		return pageobj.Locator{}, fmt.Errorf("expected exactly one locator strategy, got %d", len(locs))
	}
	return locs[0], nil
}

func decodeCatalog(r io.Reader) (*catalog, error) {
	var c catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	seen := make(map[string]bool)
	for i, p := range c.Pages {
		switch {
		case p.Name == "":
			return nil, fmt.Errorf("page %d has no name", i)
		case seen[p.Name]:
			return nil, fmt.Errorf("duplicate page %q", p.Name)
		case p.URL == "":
			return nil, fmt.Errorf("page %q has no url", p.Name)
		}
		if _, err := p.At.locator(); err != nil {
			return nil, fmt.Errorf("page %q: %w", p.Name, err)
		}
		seen[p.Name] = true
	}
	return &c, nil
}

func loadCatalog(name string) (*catalog, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCatalog(f)
}

func (c *catalog) page(name string) (catalogPage, error) {
	for _, p := range c.Pages {
		if p.Name == name {
			return p, nil
		}
	}
	return catalogPage{}, fmt.Errorf("no page %q in catalog", name)
}
