package pageobjtest

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node describes an element of the in-memory document. Nodes are rendered
// to an HTML tree when they are handed to the driver, and again after every
// Update.
type Node struct {
	Tag   string
	ID    string
	Class string // space separated
	Name  string
	Type  string // input type
	Text  string // own text, children text follows it
	Value string // input value
	Attrs map[string]string

	// Hidden elements, and the descendants of hidden elements, are
	// present but not visible.
	Hidden bool

	// Disabled and Obscured elements are visible but not clickable.
	Disabled bool
	Obscured bool

	Children []*Node

	// OnClick is called after the element is clicked, once the driver is
	// unlocked, so it can change the document.
	OnClick func()
}

// Elem returns a node with tag and children.
func Elem(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// render returns the HTML element for n, recording in src the node each
// element was rendered from.
func (n *Node) render(src map[*html.Node]*Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	set := func(key, val string, ok bool) {
		if ok {
			setAttr(el, key, val)
		}
	}
	set("id", n.ID, n.ID != "")
	set("class", n.Class, n.Class != "")
	set("name", n.Name, n.Name != "")
	set("type", n.Type, n.Type != "")
	keys := maps.Keys(n.Attrs)
	slices.Sort(keys)
	for _, k := range keys {
		setAttr(el, k, n.Attrs[k])
	}
	set("value", n.Value, n.Value != "")
	set("hidden", "", n.Hidden)
	set("disabled", "", n.Disabled)

	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		el.AppendChild(c.render(src))
	}
	src[el] = n
	return el
}

// attr returns the named attribute of n, and whether it is set.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
