package view

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hashview/pkg/dom"
	"github.com/vango-dev/hashview/pkg/loop"
	"github.com/vango-dev/hashview/pkg/template"
)

const tracerName = "github.com/vango-dev/hashview/pkg/view"

// View owns a root node and the bindings of its subtree.
type View struct {
	root     *dom.Node
	bindings Bindings

	loop       *loop.Loop
	baseLogger *slog.Logger
	logger     *slog.Logger
	tracer trace.Tracer
	stamp  func(src *dom.Node) *dom.Node

	// listeners registered through "!event" directives, by node and event
	handlers map[*dom.Node]map[string]func()

	defaultAction func(*View) bool
	cancelAction  func(*View) bool
	kbdInstalled  bool

	firstTab       *dom.Node
	focusInstalled bool

	anim animQueue
}

// Option configures a View.
type Option func(*View)

// WithLoop sets the loop on which deferred values, focus checks and
// animation steps continue. Without a loop they run synchronously.
func WithLoop(l *loop.Loop) Option {
	return func(v *View) {
		v.loop = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		v.baseLogger = logger
	}
}

// WithTracer sets the tracer used for SetData spans.
func WithTracer(t trace.Tracer) Option {
	return func(v *View) {
		v.tracer = t
	}
}

// WithStamper replaces the function that creates template instances.
func WithStamper(fn func(src *dom.Node) *dom.Node) Option {
	return func(v *View) {
		v.stamp = fn
	}
}

// New creates a View over root and scans its bindings.
func New(root *dom.Node, opts ...Option) *View {
	v := &View{root: root}
	for _, opt := range opts {
		opt(v)
	}
	if v.baseLogger == nil {
		v.baseLogger = slog.Default()
	}
	v.logger = v.baseLogger.With("component", "view")
	if v.tracer == nil {
		v.tracer = otel.Tracer(tracerName)
	}
	if v.stamp == nil {
		v.stamp = func(src *dom.Node) *dom.Node { return template.Stamp(src, "") }
	}
	v.Rebuild()
	return v
}

// FromID creates a View over the element with the given id.
func FromID(doc *dom.Document, id string, opts ...Option) (*View, error) {
	root := doc.GetElementByID(id)
	if root == nil {
		return nil, fmt.Errorf("view: no element with id %q", id)
	}
	return New(root, opts...), nil
}

// Root returns the root node.
func (v *View) Root() *dom.Node { return v.root }

// Bindings returns the current bindings.
func (v *View) Bindings() Bindings { return v.bindings }

// Rebuild rescans the root and replaces the bindings.
func (v *View) Rebuild() {
	v.bindings = Scan(v.root)
}

// SetContent replaces the root's children with n and rescans.
func (v *View) SetContent(n *dom.Node) {
	v.ClearContent()
	v.root.AppendChild(n)
	v.Rebuild()
}

// ClearContent removes the root's children, notifying each before removal,
// and empties the bindings.
func (v *View) ClearContent() {
	ClearChildren(v.root)
	v.bindings = make(Bindings)
	v.handlers = nil
}

// ClearChildren removes every child of n in document order. Each child
// receives a non-bubbling "remove" event before it is unlinked.
func ClearChildren(n *dom.Node) {
	for _, c := range n.Children() {
		removeNode(c)
	}
}

func removeNode(n *dom.Node) {
	n.DispatchEvent(dom.NewEvent(dom.EventRemove))
	n.Remove()
}

// MarkSelector adds the class "mark" to every descendant carrying class.
func (v *View) MarkSelector(class string) {
	for _, n := range v.root.ElementsByClass(class) {
		n.AddClass("mark")
	}
}

// Unmark removes the class "mark" from every descendant.
func (v *View) Unmark() {
	for _, n := range v.root.ElementsByClass("mark") {
		n.RemoveClass("mark")
	}
}

// after runs fn on the loop once d has elapsed, or immediately without a
// loop.
func (v *View) after(d time.Duration, fn func()) {
	if v.loop == nil {
		fn()
		return
	}
	v.loop.AfterFunc(d, fn)
}

// child creates a View for a stamped template instance, sharing v's
// configuration but none of its state.
func (v *View) child(root *dom.Node) *View {
	return New(root,
		WithLoop(v.loop),
		WithLogger(v.baseLogger),
		WithTracer(v.tracer),
		WithStamper(v.stamp),
	)
}
