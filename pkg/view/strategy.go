package view

import (
	"reflect"
	"sort"

	"github.com/vango-dev/hashview/pkg/deferred"
	"github.com/vango-dev/hashview/pkg/dom"
)

// strategy reads and writes one kind of bound node.
type strategy interface {
	// write applies val to n. It returns the completion signals of any
	// nested Views still waiting on deferred values.
	write(v *View, n *dom.Node, val any) []*deferred.Deferred

	// read returns the value of n given the value accumulated so far for the
	// same name. ok is false when n contributes nothing.
	read(v *View, n *dom.Node, acc any, have bool) (val any, ok bool)
}

var strategies = map[Capability]strategy{
	CapBasic:     basicStrategy{},
	CapInput:     inputStrategy{},
	CapSelect:    selectStrategy{},
	CapMultiline: multilineStrategy{},
	CapTemplate:  templateStrategy{},
	CapLink:      linkStrategy{},
}

func strategyFor(n *dom.Node) strategy {
	return strategies[Resolve(n)]
}

// SelectOption is one entry of an ordered option list written to a select.
type SelectOption struct {
	Value string
	Label string
}

// ---------------------------------------------------------------------------
// basic

type basicStrategy struct{}

func (basicStrategy) write(_ *View, n *dom.Node, val any) []*deferred.Deferred {
	ClearChildren(n)
	if node, ok := val.(*dom.Node); ok {
		n.AppendChild(node)
		return nil
	}
	n.AppendChild(dom.NewText(dom.Stringify(val)))
	return nil
}

func (basicStrategy) read(_ *View, n *dom.Node, _ any, _ bool) (any, bool) {
	return n.InnerHTML(), true
}

// ---------------------------------------------------------------------------
// input

type inputStrategy struct{}

func (inputStrategy) write(_ *View, n *dom.Node, val any) []*deferred.Deferred {
	if !n.IsCheckable() {
		n.SetValue(dom.Stringify(val))
		return nil
	}
	switch x := val.(type) {
	case bool:
		n.SetChecked(x)
	case string:
		n.SetChecked(n.Value() == x)
	default:
		if list, ok := asSlice(val); ok {
			n.SetChecked(containsValue(list, n.Value()))
		}
	}
	return nil
}

// read merges checkbox and radio values bound to the same name: the first
// node yields its value or false, later nodes turn the result into a list of
// checked values.
func (inputStrategy) read(_ *View, n *dom.Node, acc any, have bool) (any, bool) {
	if !n.IsCheckable() {
		return n.Value(), true
	}
	checked := n.Checked()
	value := n.Value()

	if !have {
		if checked {
			return value, true
		}
		return false, true
	}
	switch cur := acc.(type) {
	case bool:
		if !cur {
			if checked {
				return []string{value}, true
			}
			return []string{}, true
		}
	case []string:
		if checked {
			out := make([]string, len(cur), len(cur)+1)
			copy(out, cur)
			return append(out, value), true
		}
		return cur, true
	}
	prev := dom.Stringify(acc)
	if checked {
		return []string{prev, value}, true
	}
	return []string{prev}, true
}

// ---------------------------------------------------------------------------
// select

type selectStrategy struct{}

func (selectStrategy) write(_ *View, n *dom.Node, val any) []*deferred.Deferred {
	var opts []SelectOption
	switch x := val.(type) {
	case []SelectOption:
		opts = x
	default:
		// a key to label mapping only arrives here under a "value" directive
		if m, ok := asMap(val); ok {
			for _, k := range sortedKeys(m) {
				opts = append(opts, SelectOption{Value: k, Label: dom.Stringify(m[k])})
			}
			break
		}
		list, ok := asSlice(val)
		if !ok {
			n.SetValue(dom.Stringify(val))
			return nil
		}
		for _, item := range list {
			opts = append(opts, SelectOption{Label: dom.Stringify(item)})
		}
	}
	rebuildOptions(n, opts)
	return nil
}

// rebuildOptions replaces the options of sel and restores the previously
// selected value when it is still present. Options without a Value carry
// only their label text.
func rebuildOptions(sel *dom.Node, opts []SelectOption) {
	current := sel.Value()
	ClearChildren(sel)
	for _, o := range opts {
		opt := dom.NewElement("option")
		if o.Value != "" {
			opt.SetAttribute("value", o.Value)
		}
		opt.AppendChild(dom.NewText(o.Label))
		sel.AppendChild(opt)
	}
	sel.SetValue(current)
}

func (selectStrategy) read(_ *View, n *dom.Node, _ any, _ bool) (any, bool) {
	return n.Value(), true
}

// ---------------------------------------------------------------------------
// multiline

type multilineStrategy struct{}

func (multilineStrategy) write(_ *View, n *dom.Node, val any) []*deferred.Deferred {
	n.SetValue(dom.Stringify(val))
	return nil
}

func (multilineStrategy) read(_ *View, n *dom.Node, _ any, _ bool) (any, bool) {
	return n.Value(), true
}

// ---------------------------------------------------------------------------
// link

type linkStrategy struct{}

func (linkStrategy) write(_ *View, n *dom.Node, val any) []*deferred.Deferred {
	n.SetAttribute(linkAttribute(n), dom.Stringify(val))
	return nil
}

func (linkStrategy) read(_ *View, n *dom.Node, _ any, _ bool) (any, bool) {
	return n.GetAttribute(linkAttribute(n))
}

// ---------------------------------------------------------------------------
// helpers

// asSlice converts any slice or array except []byte into []any.
func asSlice(val any) ([]any, bool) {
	switch x := val.(type) {
	case []any:
		return x, true
	case []byte:
		return nil, false
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func containsValue(list []any, s string) bool {
	for _, item := range list {
		if dom.Stringify(item) == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
