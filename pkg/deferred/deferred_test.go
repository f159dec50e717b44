package deferred

import (
	"testing"
	"time"

	"github.com/vango-dev/hashview/pkg/loop"
)

func TestThenRunsOnLoopAfterResolve(t *testing.T) {
	l := loop.New()
	d := New(l)

	var got any
	d.Then(func(v any) { got = v })

	d.Resolve("v")
	if got != nil {
		t.Fatal("continuation ran before the loop drained")
	}
	l.RunPending()
	if got != "v" {
		t.Errorf("got = %v, want v", got)
	}
}

func TestThenAfterResolveIsStillAsync(t *testing.T) {
	l := loop.New()
	d := Resolved(l, 42)

	ran := false
	d.Then(func(any) { ran = true })
	if ran {
		t.Fatal("continuation ran inline")
	}
	l.RunPending()
	if !ran {
		t.Error("continuation did not run")
	}
}

func TestResolveOnlyOnce(t *testing.T) {
	d := New(nil)
	if !d.Resolve(1) {
		t.Error("first Resolve() = false, want true")
	}
	if d.Resolve(2) {
		t.Error("second Resolve() = true, want false")
	}
	if v, ok := d.Value(); !ok || v != 1 {
		t.Errorf("Value() = %v, %v, want 1, true", v, ok)
	}
}

func TestDoneChannel(t *testing.T) {
	d := New(nil)
	select {
	case <-d.Done():
		t.Fatal("Done closed before Resolve")
	default:
	}
	d.Resolve(nil)
	select {
	case <-d.Done():
	default:
		t.Fatal("Done not closed after Resolve")
	}
}

func TestAllWaitsForEveryInput(t *testing.T) {
	l := loop.New()
	a, b := New(l), New(l)
	all := All(l, a, b)

	a.Resolve("a")
	l.RunPending()
	if all.IsResolved() {
		t.Fatal("All resolved before every input")
	}

	b.Resolve("b")
	l.RunPending()
	v, ok := all.Value()
	if !ok {
		t.Fatal("All not resolved")
	}
	values := v.([]any)
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Errorf("values = %v, want [a b]", values)
	}
}

func TestAllEmptyIsResolved(t *testing.T) {
	if !All(loop.New()).IsResolved() {
		t.Error("All() with no inputs should be resolved")
	}
}

func TestGoAndFromChan(t *testing.T) {
	d := Go(nil, func() any { return "done" })
	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("Go did not resolve")
	}
	if v, _ := d.Value(); v != "done" {
		t.Errorf("Value() = %v, want done", v)
	}

	ch := make(chan int, 1)
	ch <- 7
	c := FromChan(nil, ch)
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("FromChan did not resolve")
	}
	if v, _ := c.Value(); v != 7 {
		t.Errorf("Value() = %v, want 7", v)
	}
}
