// Package dom provides the live UI node tree that Views bind data to.
//
// Unlike a virtual DOM, a dom.Node is mutable and long-lived: it has a parent,
// an ordered child list, attributes, script-visible properties, form state
// (value, checked, selected option), a class list, event listeners and focus.
// It is the host surface that the view package reads from and writes to.
//
// # Core Types
//
// Node is an element, a text node or a fragment. Document owns focus state
// and id lookup. Event flows from its target up through the ancestors when
// Bubbles is set.
//
// # Element API
//
// Trees are usually built with the variadic factories:
//
//	form := dom.Form(
//	    dom.Input(dom.Type("text"), dom.Bind("title")),
//	    dom.Select(dom.Bind("kind")),
//	    dom.Template(dom.Bind("items"),
//	        dom.LI(dom.Bind("label")),
//	    ),
//	)
//
// Children passed to Template land in its content fragment, which is not part
// of the live tree and is only used as a stamping source.
//
// # Threading
//
// A tree is owned by one loop (see package loop). Nodes are not safe for
// concurrent use.
package dom
