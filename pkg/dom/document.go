package dom

// Document owns a body element, focus state and id lookup.
type Document struct {
	body   *Node
	active *Node
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.CreateElement("body")
	return d
}

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates an element owned by d.
func (d *Document) CreateElement(tag string) *Node {
	n := NewElement(tag)
	n.adopt(d)
	return n
}

// CreateTextNode creates a text node owned by d.
func (d *Document) CreateTextNode(text string) *Node {
	n := NewText(text)
	n.doc = d
	return n
}

// Adopt assigns n and its subtree to d.
func (d *Document) Adopt(n *Node) *Node {
	n.adopt(d)
	return n
}

// GetElementByID returns the first element in the body subtree with the
// given id. Template content is not searched.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	d.body.Walk(func(x *Node) bool {
		if found != nil {
			return false
		}
		if x.IsElement() && x.Attribute("id") == id {
			found = x
			return false
		}
		return true
	})
	return found
}

// ActiveElement returns the focused element, or the body when nothing has
// focus.
func (d *Document) ActiveElement() *Node {
	if d.active != nil {
		return d.active
	}
	return d.body
}

// Focus moves focus to n. The previously focused element receives a
// bubbling focusout event while no element is active, then n receives
// focusin.
func (n *Node) Focus() {
	d := n.doc
	if d == nil || d.active == n {
		return
	}
	prev := d.active
	d.active = nil
	if prev != nil {
		prev.DispatchEvent(&Event{Type: EventFocusOut, Bubbles: true, Detail: n})
	}
	d.active = n
	n.DispatchEvent(&Event{Type: EventFocusIn, Bubbles: true})
}

// Blur removes focus from n if it is focused.
func (n *Node) Blur() {
	d := n.doc
	if d == nil || d.active != n {
		return
	}
	d.active = nil
	n.DispatchEvent(&Event{Type: EventFocusOut, Bubbles: true})
}

// Focused reports whether n is the active element.
func (n *Node) Focused() bool {
	return n.doc != nil && n.doc.active == n
}
