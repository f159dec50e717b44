package view

import (
	"sort"
	"strings"

	"github.com/vango-dev/hashview/pkg/dom"
)

// Bindings maps a logical name to its bound nodes in document order.
// Names without nodes are absent.
type Bindings map[string][]*dom.Node

// Scan builds the bindings of the descendants of root. The root itself is
// not considered. Template content is never scanned, and the subtrees of
// stamped template instances belong to their own Views and are skipped.
func Scan(root *dom.Node) Bindings {
	b := make(Bindings)
	for _, c := range root.Children() {
		c.Walk(func(n *dom.Node) bool {
			if !n.IsElement() {
				return false
			}
			if decl, ok := n.GetAttribute(dom.AttrBind); ok {
				for _, name := range strings.Split(decl, ",") {
					name = strings.TrimSpace(name)
					if name == "" {
						continue
					}
					b[name] = append(b[name], n)
				}
			}
			return !n.HasAttribute(dom.AttrInstance)
		})
	}
	return b
}

// Names returns the bound names in sorted order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Nodes returns the nodes bound to name.
func (b Bindings) Nodes(name string) []*dom.Node {
	return b[name]
}
