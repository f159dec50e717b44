package router

import (
	"github.com/vango-dev/hashview/pkg/dom"
)

// Link returns the fragment reference ("#" + token) for name(args...).
func Link(name string, args ...any) (string, error) {
	return LinkValues(name, args)
}

// LinkValues returns the fragment reference for a route with the given
// argument list.
func LinkValues(name string, args []any) (string, error) {
	token, err := EncodeValues(name, args)
	if err != nil {
		return "", err
	}
	return "#" + token, nil
}

// StaticLink returns the fragment reference for a static route.
func StaticLink(name string) string {
	return "#" + name
}

// Anchor creates an <a> element linking to name(args...). The element is
// owned by doc when doc is non-nil.
func Anchor(doc *dom.Document, name string, args ...any) (*dom.Node, error) {
	href, err := LinkValues(name, args)
	if err != nil {
		return nil, err
	}
	var a *dom.Node
	if doc != nil {
		a = doc.CreateElement("a")
	} else {
		a = dom.NewElement("a")
	}
	a.SetAttribute("href", href)
	return a, nil
}
