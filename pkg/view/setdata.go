package view

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hashview/pkg/deferred"
	"github.com/vango-dev/hashview/pkg/dom"
)

// SetData writes data to the bound nodes. Names without bound nodes are
// ignored. Names are applied in sorted order; every value that is not
// deferred is applied before SetData returns.
//
// The returned signal resolves once every deferred value of this call has
// been applied, including those of nested template instances. Without
// deferred values it is already resolved.
func (v *View) SetData(data map[string]any) *deferred.Deferred {
	return v.SetDataContext(context.Background(), data)
}

// SetDataContext is SetData with a parent context for tracing.
func (v *View) SetDataContext(ctx context.Context, data map[string]any) *deferred.Deferred {
	_, span := v.tracer.Start(ctx, "view.SetData",
		trace.WithAttributes(attribute.Int("view.fields", len(data))))
	defer span.End()

	var pending []*deferred.Deferred
	for _, name := range sortedKeys(data) {
		nodes := v.bindings[name]
		if len(nodes) == 0 {
			continue
		}
		val := data[name]

		d, ok := val.(*deferred.Deferred)
		if !ok {
			pending = append(pending, v.applyAll(nodes, val)...)
			continue
		}

		applied := deferred.New(v.loop)
		d.Then(func(res any) {
			children := v.applyAll(nodes, res)
			deferred.All(v.loop, children...).Then(func(any) {
				applied.Resolve(nil)
			})
		})
		pending = append(pending, applied)
	}

	span.SetAttributes(attribute.Int("view.pending", len(pending)))
	return deferred.All(v.loop, pending...)
}

func (v *View) applyAll(nodes []*dom.Node, val any) []*deferred.Deferred {
	var pending []*deferred.Deferred
	for _, n := range nodes {
		pending = append(pending, v.apply(n, val)...)
	}
	return pending
}

// apply writes one value to one node: directives first, then the content
// through the node's strategy.
func (v *View) apply(n *dom.Node, val any) []*deferred.Deferred {
	if d, ok := asDirectives(val); ok {
		v.applyDirectives(n, d)
		nested, ok := d[DirectiveValue]
		if !ok {
			return nil
		}
		val = nested
	}
	if val == nil {
		return nil
	}
	return strategyFor(n).write(v, n, val)
}
