package view

import (
	"strings"

	"github.com/vango-dev/hashview/pkg/dom"
)

// Capability selects the read/write strategy used for a bound node.
type Capability int

const (
	// CapBasic replaces content on write and reads inner HTML.
	CapBasic Capability = iota
	// CapInput handles <input>, including checkbox and radio semantics.
	CapInput
	// CapSelect handles <select>, including option list rebuilding.
	CapSelect
	// CapMultiline handles <textarea>.
	CapMultiline
	// CapTemplate expands a <template> into repeated instances.
	CapTemplate
	// CapLink writes the URI attribute of <img>, <iframe> and <a>.
	CapLink
)

var capabilityNames = [...]string{
	CapBasic:     "basic",
	CapInput:     "input",
	CapSelect:    "select",
	CapMultiline: "multiline",
	CapTemplate:  "template",
	CapLink:      "link",
}

func (c Capability) String() string {
	if c >= 0 && int(c) < len(capabilityNames) {
		return capabilityNames[c]
	}
	return "unknown"
}

// EffectiveTag returns the tag used for strategy selection: the
// data-force-tag override if present, else the node's own tag.
func EffectiveTag(n *dom.Node) string {
	if force := n.Attribute(dom.AttrForceTag); force != "" {
		return strings.ToLower(force)
	}
	return n.Tag()
}

// Resolve returns the capability of n.
func Resolve(n *dom.Node) Capability {
	switch EffectiveTag(n) {
	case "input":
		return CapInput
	case "select":
		return CapSelect
	case "textarea":
		return CapMultiline
	case "template":
		return CapTemplate
	case "img", "iframe", "a":
		return CapLink
	}
	return CapBasic
}

// linkAttribute returns the attribute carrying the URI for a CapLink node.
func linkAttribute(n *dom.Node) string {
	if EffectiveTag(n) == "a" {
		return "href"
	}
	return "src"
}
