package dom

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// PreviousSibling returns the preceding sibling, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// AppendChild appends child, detaching it from its previous parent first.
// Appending a fragment moves the fragment's children instead.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref. A nil ref appends.
// It panics if ref is not a child of n, or if the insertion would create a
// cycle.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if child == nil {
		return nil
	}
	if ref != nil && ref.parent != n {
		panic("dom: InsertBefore reference is not a child of this node")
	}
	if child.typ == FragmentNode {
		for _, c := range child.Children() {
			n.InsertBefore(c, ref)
		}
		return child
	}
	if child == n || child.Contains(n) {
		panic("dom: insertion would create a cycle")
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	idx := len(n.children)
	if ref != nil {
		idx = n.indexOf(ref)
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n
	child.adopt(n.doc)
	return child
}

// RemoveChild unlinks child from n. It is a no-op if child is not a child
// of n.
func (n *Node) RemoveChild(child *Node) *Node {
	i := n.indexOf(child)
	if i < 0 {
		return child
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	if n.doc != nil && n.doc.active != nil && child.Contains(n.doc.active) {
		n.doc.active = nil
	}
	return child
}

// Remove unlinks n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Walk visits n and its descendants in document order. Template content is
// not visited. If fn returns false the node's descendants are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// FindAll returns the descendants of n (excluding n) that match pred, in
// document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(x *Node) bool {
			if pred(x) {
				out = append(out, x)
			}
			return true
		})
	}
	return out
}

// ElementsByClass returns descendant elements carrying class name.
func (n *Node) ElementsByClass(name string) []*Node {
	return n.FindAll(func(x *Node) bool {
		return x.IsElement() && x.HasClass(name)
	})
}

// CloneNode copies n. With deep set, children and template content are
// copied too. Listeners are never copied; form state is.
func (n *Node) CloneNode(deep bool) *Node {
	c := &Node{
		typ:          n.typ,
		tag:          n.tag,
		text:         n.text,
		attrs:        n.Attributes(),
		value:        n.value,
		valueDirty:   n.valueDirty,
		checked:      n.checked,
		checkedDirty: n.checkedDirty,
		selIndex:     n.selIndex,
		selDirty:     n.selDirty,
	}
	if n.content != nil {
		c.content = NewFragment()
		if deep {
			for _, x := range n.content.children {
				c.content.AppendChild(x.CloneNode(true))
			}
		}
	}
	if deep {
		for _, x := range n.children {
			c.AppendChild(x.CloneNode(true))
		}
	}
	return c
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) adopt(doc *Document) {
	if n.doc == doc {
		return
	}
	n.doc = doc
	for _, c := range n.children {
		c.adopt(doc)
	}
	if n.content != nil {
		n.content.adopt(doc)
	}
}
