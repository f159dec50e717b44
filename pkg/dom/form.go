package dom

import "strings"

// InputType returns the lower-case type attribute of an <input>, defaulting
// to "text". It returns "" for other elements.
func (n *Node) InputType() string {
	if n.tag != "input" {
		return ""
	}
	t := strings.ToLower(n.Attribute("type"))
	if t == "" {
		return "text"
	}
	return t
}

// IsCheckable reports whether n is a checkbox or radio input.
func (n *Node) IsCheckable() bool {
	t := n.InputType()
	return t == "checkbox" || t == "radio"
}

// Value returns the current value property.
//
//   - text-like inputs and textareas: the edited value, else the default
//     (value attribute or text content)
//   - checkboxes and radios: the value attribute, defaulting to "on"
//   - selects: the value of the selected option
//   - other elements: the last value assigned by script
func (n *Node) Value() string {
	switch n.tag {
	case "input":
		if n.IsCheckable() {
			if v, ok := n.GetAttribute("value"); ok {
				return v
			}
			return "on"
		}
		if n.valueDirty {
			return n.value
		}
		return n.Attribute("value")
	case "textarea":
		if n.valueDirty {
			return n.value
		}
		return n.TextContent()
	case "select":
		opt := n.SelectedOption()
		if opt == nil {
			return ""
		}
		return OptionValue(opt)
	case "option":
		return OptionValue(n)
	}
	return n.value
}

// SetValue assigns the value property.
func (n *Node) SetValue(v string) {
	switch n.tag {
	case "input":
		if n.IsCheckable() {
			n.SetAttribute("value", v)
			return
		}
	case "select":
		n.selDirty = true
		n.selIndex = -1
		for i, opt := range n.Options() {
			if OptionValue(opt) == v {
				n.selIndex = i
				break
			}
		}
		return
	case "option":
		n.SetAttribute("value", v)
		return
	}
	n.value = v
	n.valueDirty = true
}

// Checked returns the checkedness of a checkbox or radio.
func (n *Node) Checked() bool {
	if n.checkedDirty {
		return n.checked
	}
	return n.HasAttribute("checked")
}

// SetChecked sets the checkedness. Checking a radio unchecks the other radios
// of the same name in the same tree.
func (n *Node) SetChecked(checked bool) {
	n.checked = checked
	n.checkedDirty = true
	if !checked || n.InputType() != "radio" {
		return
	}
	group := n.Attribute("name")
	if group == "" {
		return
	}
	n.Root().Walk(func(x *Node) bool {
		if x != n && x.InputType() == "radio" && x.Attribute("name") == group {
			x.checked = false
			x.checkedDirty = true
		}
		return true
	})
}

// Options returns the <option> elements of a select, including those nested
// in <optgroup>.
func (n *Node) Options() []*Node {
	var out []*Node
	for _, c := range n.children {
		switch c.tag {
		case "option":
			out = append(out, c)
		case "optgroup":
			for _, o := range c.children {
				if o.tag == "option" {
					out = append(out, o)
				}
			}
		}
	}
	return out
}

// SelectedIndex returns the index of the selected option, or -1.
func (n *Node) SelectedIndex() int {
	opts := n.Options()
	if n.selDirty {
		if n.selIndex >= 0 && n.selIndex < len(opts) {
			return n.selIndex
		}
		return -1
	}
	for i, o := range opts {
		if o.HasAttribute("selected") {
			return i
		}
	}
	if len(opts) > 0 {
		return 0
	}
	return -1
}

// SetSelectedIndex selects the option at i; out-of-range clears the selection.
func (n *Node) SetSelectedIndex(i int) {
	n.selDirty = true
	n.selIndex = i
}

// SelectedOption returns the selected option of a select, or nil.
func (n *Node) SelectedOption() *Node {
	i := n.SelectedIndex()
	if i < 0 {
		return nil
	}
	return n.Options()[i]
}

// OptionValue returns the value attribute of an option, falling back to its
// text.
func OptionValue(opt *Node) string {
	if v, ok := opt.GetAttribute("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.TextContent())
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var b strings.Builder
	n.Walk(func(x *Node) bool {
		if x.typ == TextNode {
			b.WriteString(x.text)
		}
		return true
	})
	return b.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(s string) {
	if n.typ == TextNode {
		n.text = s
		return
	}
	for _, c := range n.Children() {
		n.RemoveChild(c)
	}
	if s != "" {
		n.AppendChild(NewText(s))
	}
}
