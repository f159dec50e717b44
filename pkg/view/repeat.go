package view

import (
	"github.com/vango-dev/hashview/pkg/deferred"
	"github.com/vango-dev/hashview/pkg/dom"
)

// ItemName is the name under which a scalar list element is bound inside a
// template instance.
const ItemName = "."

type templateStrategy struct{}

// write removes the instances left by the previous write, then stamps one
// instance per element and inserts it before the template, in order.
// A value that is not a list leaves no instances.
func (templateStrategy) write(v *View, n *dom.Node, val any) []*deferred.Deferred {
	for prev := n.PreviousSibling(); isInstance(prev); prev = n.PreviousSibling() {
		removeNode(prev)
	}

	parent := n.Parent()
	if parent == nil {
		v.logger.Debug("template has no parent, skipping instances")
		return nil
	}

	items, _ := asSlice(val)
	var pending []*deferred.Deferred
	for _, item := range items {
		inst := v.stamp(n)
		child := v.child(inst)
		if done := child.SetData(itemData(item)); !done.IsResolved() {
			pending = append(pending, done)
		}
		inst.SetAttribute(dom.AttrInstance, "1")
		parent.InsertBefore(inst, n)
	}
	return pending
}

// read collects one value per instance, in document order.
func (templateStrategy) read(v *View, n *dom.Node, _ any, _ bool) (any, bool) {
	var insts []*dom.Node
	for prev := n.PreviousSibling(); isInstance(prev); prev = prev.PreviousSibling() {
		insts = append(insts, prev)
	}

	out := make([]any, 0, len(insts))
	for i := len(insts) - 1; i >= 0; i-- {
		data := v.child(insts[i]).ReadData()
		if item, ok := data[ItemName]; ok && len(data) == 1 {
			out = append(out, item)
			continue
		}
		out = append(out, data)
	}
	return out, true
}

func isInstance(n *dom.Node) bool {
	return n != nil && n.IsElement() && n.HasAttribute(dom.AttrInstance)
}

// itemData turns a list element into the data of its instance View. Maps
// are used as is; any other value is bound under ItemName.
func itemData(item any) map[string]any {
	if m, ok := asMap(item); ok {
		return m
	}
	return map[string]any{ItemName: item}
}
