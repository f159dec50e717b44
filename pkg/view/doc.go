// Package view projects structured data onto a tree of dom nodes and reads
// edited values back out.
//
// Nodes opt into binding by declaring one or more comma-separated names in
// the data-name attribute. A View scans its root once, building a map from
// name to the bound nodes in document order, and rebuilds that map whenever
// its content is replaced.
//
//	root := dom.Div(
//	    dom.Input(dom.Type("text"), dom.Bind("title")),
//	    dom.UL(dom.Template(dom.Bind("items"), dom.Data("tag", "li"),
//	        dom.Span(dom.Bind(".")),
//	    )),
//	)
//	v := view.New(root, view.WithLoop(l))
//	done := v.SetData(map[string]any{
//	    "title": "Inbox",
//	    "items": []string{"a", "b"},
//	})
//	done.Then(func(any) { fmt.Println(v.ReadData("title")) })
//
// # Values
//
// SetData accepts, per name:
//
//   - scalars (string, bool, numbers); nil leaves the node untouched
//   - a *dom.Node, appended to generic nodes as content
//   - slices, expanding a <template> into one stamped instance per element
//   - a map[string]any (or Directives) of directives, see below
//   - a *deferred.Deferred, applied once it resolves
//
// The strategy used for a node is chosen by its Capability, derived from the
// tag name or from the data-force-tag override.
//
// # Directives
//
// Keys of a directive object are interpreted by prefix:
//
//	"!click"    registers an event listener, replacing the previous one
//	".hidden"   sets a node property; nil deletes it
//	"classList" map of class name to bool
//	"value"     the content written after the directives are applied
//	other       sets the attribute; nil removes it
//
// A directive object without a "value" key does not change node content.
//
// # Threading
//
// A View is not safe for concurrent use. Deferred values, focus containment
// and animations continue on the View's loop.
package view
