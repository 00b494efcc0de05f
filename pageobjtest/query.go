package pageobjtest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/chromedp/pageobj"
)

// query returns the descendants of scope matching loc, in document order.
func query(scope *html.Node, loc pageobj.Locator) ([]*html.Node, error) {
	sel := loc.Selector()
	if loc.By() == pageobj.ByXPath {
		return queryXPath(scope, sel)
	}

	all := goquery.NewDocumentFromNode(scope).Find("*")
	var match func(*goquery.Selection) bool
	switch loc.By() {
	case pageobj.ByCSS, pageobj.ByCSSContainingText:
		m, err := cascadia.Compile(sel)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", sel, err)
		}
		text := loc.Text()
		all = goquery.NewDocumentFromNode(scope).FindMatcher(m)
		match = func(s *goquery.Selection) bool {
			return strings.Contains(s.Text(), text)
		}
	case pageobj.ByID:
		match = func(s *goquery.Selection) bool {
			id, ok := s.Attr("id")
			return ok && id == sel
		}
	case pageobj.ByName:
		match = func(s *goquery.Selection) bool {
			name, ok := s.Attr("name")
			return ok && name == sel
		}
	case pageobj.ByLinkText:
		match = func(s *goquery.Selection) bool {
			return s.Is("a") && strings.TrimSpace(s.Text()) == sel
		}
	case pageobj.ByPartialLinkText:
		match = func(s *goquery.Selection) bool {
			return s.Is("a") && strings.Contains(s.Text(), sel)
		}
	case pageobj.ByButtonText:
		match = func(s *goquery.Selection) bool {
			switch {
			case s.Is("button"):
				return strings.TrimSpace(s.Text()) == sel
			case s.Is("input[type=button], input[type=submit], input[type=reset]"):
				return strings.TrimSpace(s.AttrOr("value", "")) == sel
			}
			return false
		}
	default:
		return nil, fmt.Errorf("unsupported locator %v", loc)
	}
	return all.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s)
	}).Nodes, nil
}

// queryXPath evaluates expr like document.evaluate with scope as the context
// node: absolute paths search the whole document, relative paths start at
// scope.
func queryXPath(scope *html.Node, expr string) ([]*html.Node, error) {
	top := scope
	if strings.HasPrefix(strings.TrimLeft(expr, " \t\n("), "/") {
		for top.Parent != nil {
			top = top.Parent
		}
	}
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	elems := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elems = append(elems, n)
		}
	}
	return elems, nil
}
