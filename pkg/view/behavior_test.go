package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/hashview/pkg/dom"
)

func TestKeyboardActions(t *testing.T) {
	field := dom.Input(dom.Bind("q"))
	root := dom.Div(field)
	outer := dom.Div(root)
	v := New(root)

	outerSaw := 0
	outer.AddEventListener(dom.EventKeyDown, func(*dom.Event) { outerSaw++ })

	confirmed := 0
	v.SetDefaultAction(func(got *View) bool {
		if got != v {
			t.Error("callback received a different view")
		}
		confirmed++
		return true
	})
	v.SetCancelAction(func(*View) bool { return false })

	if field.DispatchEvent(dom.NewKeyEvent(dom.KeyEnter)) {
		t.Error("Enter should be consumed by the default action")
	}
	if confirmed != 1 || outerSaw != 0 {
		t.Errorf("confirmed=%d outerSaw=%d, want 1 0", confirmed, outerSaw)
	}

	if !field.DispatchEvent(dom.NewKeyEvent(dom.KeyEscape)) {
		t.Error("declined Escape must not prevent the default")
	}
	if outerSaw != 1 {
		t.Errorf("outerSaw = %d, want 1", outerSaw)
	}
	if n := root.ListenerCount(dom.EventKeyDown); n != 1 {
		t.Errorf("keydown listeners = %d, want 1", n)
	}
}

func TestFocusContainment(t *testing.T) {
	l, clk := newTestLoop()
	doc := dom.NewDocument()
	first := dom.Input()
	second := dom.Input()
	outside := dom.Input()
	root := dom.Div(first, second)
	doc.Body().AppendChild(root)
	doc.Body().AppendChild(outside)

	v := New(root, WithLoop(l))
	v.SetFirstTabElement(first)
	if !first.Focused() {
		t.Fatal("first tab element should be focused")
	}

	second.Focus()
	advance(clk, l, time.Millisecond)
	if !second.Focused() {
		t.Error("focus moving within the view must be kept")
	}

	outside.Focus()
	if !outside.Focused() {
		t.Fatal("focus should move before the recheck runs")
	}
	advance(clk, l, time.Millisecond)
	if !first.Focused() {
		t.Error("focus leaving the view should return to the first tab element")
	}

	v.SetFirstTabElement(first)
	if n := root.ListenerCount(dom.EventFocusOut); n != 1 {
		t.Errorf("focusout listeners = %d, want 1", n)
	}
}

func TestSetContentWithAnimSerializes(t *testing.T) {
	l, clk := newTestLoop()
	old := dom.Span("old")
	root := dom.Div(old)
	v := New(root, WithLoop(l))
	p := AnimParams{Duration: 100 * time.Millisecond, EnterClass: "in", ExitClass: "out"}

	a := dom.Div(dom.Bind("a"))
	b := dom.Div(dom.Bind("b"))
	d1 := v.SetContentWithAnim(a, p)
	d2 := v.SetContentWithAnim(b, p)

	if !old.HasClass("out") || root.FirstChild() != old {
		t.Fatalf("leave step not started: %s", root.OuterHTML())
	}

	advance(clk, l, 100*time.Millisecond)
	if root.ChildCount() != 1 || root.FirstChild() != a || !a.HasClass("in") {
		t.Fatalf("enter step not applied: %s", root.OuterHTML())
	}
	if len(v.Bindings().Nodes("a")) != 1 {
		t.Error("bindings not rebuilt after enter")
	}
	if d1.IsResolved() {
		t.Error("first request resolved before its enter step finished")
	}

	advance(clk, l, 100*time.Millisecond)
	if !d1.IsResolved() {
		t.Fatal("first request should be resolved")
	}
	if !a.HasClass("out") || a.HasClass("in") {
		t.Errorf("second leave step: class = %q, want out", a.Attribute("class"))
	}
	if d2.IsResolved() {
		t.Error("second request resolved too early")
	}

	advance(clk, l, 100*time.Millisecond)
	advance(clk, l, 100*time.Millisecond)
	if !d2.IsResolved() || root.FirstChild() != b {
		t.Errorf("second request not finished: %s", root.OuterHTML())
	}
}

func TestSetContentWithAnimCancelled(t *testing.T) {
	l, _ := newTestLoop()
	old := dom.Span("old")
	root := dom.Div(old)
	v := New(root, WithLoop(l))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := v.SetContentWithAnimContext(ctx, dom.Div(), AnimParams{Duration: time.Second})

	val, ok := d.Value()
	if !ok {
		t.Fatal("cancelled request should resolve immediately")
	}
	if err, _ := val.(error); !errors.Is(err, context.Canceled) {
		t.Errorf("value = %v, want context.Canceled", val)
	}
	if root.FirstChild() != old {
		t.Error("cancelled request must not touch content")
	}
}
