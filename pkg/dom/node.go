package dom

import (
	"strings"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota // <div>, <input>, etc.
	TextNode                     // Plain text
	FragmentNode                 // Detached grouping, e.g. template content
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value string
}

// Node is a live UI node.
type Node struct {
	typ  NodeType
	tag  string
	text string

	attrs []Attr
	props map[string]any

	// Form state. The dirty flags record that script assigned the property,
	// after which the content attribute no longer provides the value.
	value        string
	valueDirty   bool
	checked      bool
	checkedDirty bool
	selIndex     int
	selDirty     bool

	parent   *Node
	children []*Node
	content  *Node

	listeners map[string][]*listener
	doc       *Document
}

// NewElement creates a detached element. Tag names are case-insensitive
// and stored in lower case.
func NewElement(tag string) *Node {
	n := &Node{typ: ElementNode, tag: strings.ToLower(tag)}
	if n.tag == "template" {
		n.content = NewFragment()
	}
	return n
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{typ: TextNode, text: text}
}

// NewFragment creates an empty fragment.
func NewFragment() *Node {
	return &Node{typ: FragmentNode}
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the lower-case tag name, or "" for non-elements.
func (n *Node) Tag() string { return n.tag }

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool { return n != nil && n.typ == ElementNode }

// Text returns the data of a text node.
func (n *Node) Text() string { return n.text }

// SetText replaces the data of a text node.
func (n *Node) SetText(s string) { n.text = s }

// Content returns the content fragment of a <template> element, or nil.
func (n *Node) Content() *Node { return n.content }

// OwnerDocument returns the document n belongs to, or nil when detached
// from any document.
func (n *Node) OwnerDocument() *Document { return n.doc }

// =============================================================================
// Attributes
// =============================================================================

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attribute returns the attribute value, or "" when absent.
func (n *Node) Attribute(name string) string {
	v, _ := n.GetAttribute(name)
	return v
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// SetAttribute sets an attribute, keeping the position of an existing one.
func (n *Node) SetAttribute(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Key == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: name, Value: value})
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.attrs {
		if a.Key == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the attributes in insertion order.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.Attribute("id") }

// =============================================================================
// Class list
// =============================================================================

// Classes returns the class list.
func (n *Node) Classes() []string {
	return strings.Fields(n.Attribute("class"))
}

// HasClass reports whether the class list contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds classes that are not already present.
func (n *Node) AddClass(names ...string) {
	classes := n.Classes()
	changed := false
	for _, name := range names {
		if name == "" || containsString(classes, name) {
			continue
		}
		classes = append(classes, name)
		changed = true
	}
	if changed || !n.HasAttribute("class") {
		n.SetAttribute("class", strings.Join(classes, " "))
	}
}

// RemoveClass removes classes.
func (n *Node) RemoveClass(names ...string) {
	if !n.HasAttribute("class") {
		return
	}
	classes := n.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if !containsString(names, c) {
			kept = append(kept, c)
		}
	}
	n.SetAttribute("class", strings.Join(kept, " "))
}

// ReplaceClass replaces old with replacement in place. It reports whether
// old was present.
func (n *Node) ReplaceClass(old, replacement string) bool {
	classes := n.Classes()
	idx := -1
	for i, c := range classes {
		if c == old {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if containsString(classes, replacement) {
		classes = append(classes[:idx], classes[idx+1:]...)
	} else {
		classes[idx] = replacement
	}
	n.SetAttribute("class", strings.Join(classes, " "))
	return true
}

// =============================================================================
// Properties
// =============================================================================

// Property returns a script-visible property. The "value" and "checked"
// properties reflect form state.
func (n *Node) Property(name string) (any, bool) {
	switch name {
	case "value":
		return n.Value(), true
	case "checked":
		return n.Checked(), true
	}
	v, ok := n.props[name]
	return v, ok
}

// SetProperty assigns a script-visible property without touching attributes.
func (n *Node) SetProperty(name string, v any) {
	switch name {
	case "value":
		n.SetValue(Stringify(v))
		return
	case "checked":
		b, _ := v.(bool)
		n.SetChecked(b)
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = v
}

// DeleteProperty removes a script-visible property.
func (n *Node) DeleteProperty(name string) {
	delete(n.props, name)
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
