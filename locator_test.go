package pageobj_test

import (
	"testing"

	"github.com/chromedp/pageobj"
)

func TestLocator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		loc       pageobj.Locator
		by        pageobj.By
		sel, text string
		str       string
	}{
		{pageobj.CSS("#submit"), pageobj.ByCSS, "#submit", "", `css("#submit")`},
		{pageobj.ID("submit"), pageobj.ByID, "submit", "", `id("submit")`},
		{pageobj.XPath("//a"), pageobj.ByXPath, "//a", "", `xpath("//a")`},
		{pageobj.Name("user"), pageobj.ByName, "user", "", `name("user")`},
		{pageobj.LinkText("Home"), pageobj.ByLinkText, "Home", "", `linkText("Home")`},
		{pageobj.PartialLinkText("Ho"), pageobj.ByPartialLinkText, "Ho", "", `partialLinkText("Ho")`},
		{pageobj.ButtonText("OK"), pageobj.ByButtonText, "OK", "", `buttonText("OK")`},
		{pageobj.CSSContainingText("li", "two"), pageobj.ByCSSContainingText, "li", "two", `cssContainingText("li", "two")`},
	}
	for _, test := range tests {
		if test.loc.By() != test.by || test.loc.Selector() != test.sel || test.loc.Text() != test.text {
			t.Errorf("unexpected locator %v", test.loc)
		}
		if s := test.loc.String(); s != test.str {
			t.Errorf("expected %s, got: %s", test.str, s)
		}
		if test.loc.IsZero() {
			t.Errorf("%v: expected non zero locator", test.loc)
		}
	}

	var zero pageobj.Locator
	if !zero.IsZero() || zero.String() != "<none>" {
		t.Errorf("unexpected zero locator %v", zero)
	}
	if pageobj.CSS("a") != pageobj.CSS("a") || pageobj.CSS("a") == pageobj.XPath("a") {
		t.Error("expected locators to compare by strategy and selector")
	}
}

func TestPathString(t *testing.T) {
	t.Parallel()

	var p pageobj.Path
	if s := p.String(); s != "document" {
		t.Errorf("expected document, got: %s", s)
	}
	p = pageobj.Path{
		{Locator: pageobj.ID("list"), Index: -1},
		{Locator: pageobj.CSS("li"), Index: 0},
	}
	if s := p.String(); s != `id("list") > css("li")[0]` {
		t.Errorf("unexpected path %s", s)
	}
	if !p.Equal(pageobj.Document.Element(pageobj.ID("list")).All(pageobj.CSS("li")).First().Path()) {
		t.Error("expected paths to be equal")
	}
}
