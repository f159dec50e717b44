package dom

import (
	"fmt"
	"strings"
)

// Declaration attributes recognized by the view package.
const (
	// AttrBind declares the comma-separated logical names a node is bound to.
	AttrBind = "data-name"

	// AttrForceTag overrides the tag used to pick a read/write strategy.
	AttrForceTag = "data-force-tag"

	// AttrInstance marks nodes stamped from a repeated template.
	AttrInstance = "data-container-item"
)

// EventBinding attaches a listener during element construction.
type EventBinding struct {
	Type     string
	Listener Listener
}

// On creates an EventBinding.
func On(typ string, fn Listener) EventBinding {
	return EventBinding{Type: typ, Listener: fn}
}

// El creates an element with the given tag. Arguments can be: nil, Attr,
// []Attr, *Node, []*Node, string (text child) or EventBinding.
// Children of a <template> are placed in its content fragment.
func El(tag string, args ...any) *Node {
	n := NewElement(tag)
	target := n
	if n.content != nil {
		target = n.content
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if v.Key != "" {
				n.SetAttribute(v.Key, v.Value)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					n.SetAttribute(a.Key, a.Value)
				}
			}
		case *Node:
			if v != nil {
				target.AppendChild(v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					target.AppendChild(c)
				}
			}
		case string:
			target.AppendChild(NewText(v))
		case EventBinding:
			n.AddEventListener(v.Type, v.Listener)
		default:
			panic(fmt.Sprintf("dom: unsupported argument %T for <%s>", arg, tag))
		}
	}
	return n
}

// Text creates a text node.
func Text(content string) *Node { return NewText(content) }

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node { return NewText(fmt.Sprintf(format, args...)) }

// Fragment groups nodes without a wrapper element.
func Fragment(children ...*Node) *Node {
	f := NewFragment()
	for _, c := range children {
		if c != nil {
			f.AppendChild(c)
		}
	}
	return f
}

// Elements

func Div(args ...any) *Node      { return El("div", args...) }
func Span(args ...any) *Node     { return El("span", args...) }
func P(args ...any) *Node        { return El("p", args...) }
func H1(args ...any) *Node       { return El("h1", args...) }
func H2(args ...any) *Node       { return El("h2", args...) }
func UL(args ...any) *Node       { return El("ul", args...) }
func LI(args ...any) *Node       { return El("li", args...) }
func Form(args ...any) *Node     { return El("form", args...) }
func Label(args ...any) *Node    { return El("label", args...) }
func Button(args ...any) *Node   { return El("button", args...) }
func Input(args ...any) *Node    { return El("input", args...) }
func TextArea(args ...any) *Node { return El("textarea", args...) }
func Select(args ...any) *Node   { return El("select", args...) }
func Option(args ...any) *Node   { return El("option", args...) }
func Template(args ...any) *Node { return El("template", args...) }
func Img(args ...any) *Node      { return El("img", args...) }
func A(args ...any) *Node        { return El("a", args...) }
func IFrame(args ...any) *Node   { return El("iframe", args...) }

// Attributes

// Attribute creates an arbitrary attribute.
func Attribute(key, value string) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attr{Key: "class", Value: strings.Join(classes, " ")} }

// Style sets the style attribute.
func Style(style string) Attr { return Attr{Key: "style", Value: style} }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return Attr{Key: "data-" + key, Value: value} }

// Bind declares the logical names a node is bound to.
func Bind(names ...string) Attr { return Attr{Key: AttrBind, Value: strings.Join(names, ",")} }

// ForceTag overrides the tag used to pick the node's read/write strategy.
func ForceTag(tag string) Attr { return Attr{Key: AttrForceTag, Value: tag} }

// Type sets the type attribute.
func Type(t string) Attr { return Attr{Key: "type", Value: t} }

// Name sets the name attribute.
func Name(name string) Attr { return Attr{Key: "name", Value: name} }

// Value sets the value attribute.
func Value(v string) Attr { return Attr{Key: "value", Value: v} }

// Href sets the href attribute.
func Href(url string) Attr { return Attr{Key: "href", Value: url} }

// Src sets the src attribute.
func Src(url string) Attr { return Attr{Key: "src", Value: url} }

// Checked sets the checked attribute.
func Checked() Attr { return Attr{Key: "checked", Value: ""} }

// Selected sets the selected attribute.
func Selected() Attr { return Attr{Key: "selected", Value: ""} }

// TabIndex sets the tabindex attribute.
func TabIndex(i int) Attr { return Attr{Key: "tabindex", Value: fmt.Sprint(i)} }
