// Package template stamps fresh nodes from template elements.
//
// A template declares its stamping metadata through data attributes:
//
//	<template id="row" data-tag="li" data-class="row" data-style="color:red">
//	    <span data-name="label"></span>
//	</template>
//
// Stamp wraps a deep copy of the template content in a new element whose tag,
// class and style come from that metadata unless the caller overrides the tag.
package template

import (
	"errors"
	"fmt"

	"github.com/vango-dev/hashview/pkg/dom"
)

// ErrNotFound is returned by Load when no element carries the requested id.
var ErrNotFound = errors.New("template: not found")

// DefaultTag is used when neither the caller nor the template names a tag.
const DefaultTag = "div"

// ClassPrefix prefixes the class given to nodes stamped from named templates
// that do not declare data-class.
const ClassPrefix = "templ_"

// Stamp creates a new node from src. The wrapper tag is tag if non-empty,
// else the template's data-tag, else DefaultTag. Content is copied from the
// template's content fragment, or from src's children when src is not a
// <template>.
func Stamp(src *dom.Node, tag string) *dom.Node {
	return stamp(src, "", tag)
}

// Load finds the template with the given id in doc and stamps it. Nodes
// stamped this way receive the class "templ_<id>" when the template does not
// declare data-class.
func Load(doc *dom.Document, id, tag string) (*dom.Node, error) {
	src := doc.GetElementByID(id)
	if src == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	n := stamp(src, id, tag)
	return doc.Adopt(n), nil
}

func stamp(src *dom.Node, name, tag string) *dom.Node {
	if tag == "" {
		tag = src.Attribute("data-tag")
	}
	if tag == "" {
		tag = DefaultTag
	}

	n := dom.NewElement(tag)
	if class, ok := src.GetAttribute("data-class"); ok && class != "" {
		n.SetAttribute("class", class)
	} else if name != "" {
		n.AddClass(ClassPrefix + name)
	}
	if style := src.Attribute("data-style"); style != "" {
		n.SetAttribute("style", style)
	}

	from := src
	if c := src.Content(); c != nil {
		from = c
	}
	for _, c := range from.Children() {
		n.AppendChild(c.CloneNode(true))
	}
	if doc := src.OwnerDocument(); doc != nil {
		doc.Adopt(n)
	}
	return n
}
