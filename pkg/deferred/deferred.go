// Package deferred implements values that become available later, with
// continuations that run on a loop.
//
// A Deferred is resolved exactly once, from any goroutine. Continuations
// attached with Then are always posted to the owning loop, never run inline,
// so a continuation observes the same single-threaded world as every other
// task. A Deferred without a loop runs continuations synchronously, which is
// only meant for code that already executes on the loop.
package deferred

import (
	"sync"

	"github.com/vango-dev/hashview/pkg/loop"
)

// Deferred is a handle to a value that is not yet available.
type Deferred struct {
	loop *loop.Loop

	mu       sync.Mutex
	resolved bool
	value    any
	then     []func(any)
	done     chan struct{}
}

// New creates an unresolved Deferred whose continuations run on l.
func New(l *loop.Loop) *Deferred {
	return &Deferred{
		loop: l,
		done: make(chan struct{}),
	}
}

// Resolved returns a Deferred that is already resolved with v.
func Resolved(l *loop.Loop, v any) *Deferred {
	d := New(l)
	d.Resolve(v)
	return d
}

// Go runs fn on a new goroutine and resolves the returned Deferred with its
// result.
func Go(l *loop.Loop, fn func() any) *Deferred {
	d := New(l)
	go func() {
		d.Resolve(fn())
	}()
	return d
}

// FromChan resolves the returned Deferred with the first value received
// from ch, or nil if ch is closed first.
func FromChan[T any](l *loop.Loop, ch <-chan T) *Deferred {
	d := New(l)
	go func() {
		v, ok := <-ch
		if !ok {
			d.Resolve(nil)
			return
		}
		d.Resolve(v)
	}()
	return d
}

// Resolve sets the value and schedules every attached continuation.
// Only the first call has an effect; it reports whether this call resolved d.
func (d *Deferred) Resolve(v any) bool {
	d.mu.Lock()
	if d.resolved {
		d.mu.Unlock()
		return false
	}
	d.resolved = true
	d.value = v
	pending := d.then
	d.then = nil
	close(d.done)
	d.mu.Unlock()

	for _, fn := range pending {
		d.schedule(fn, v)
	}
	return true
}

// Then attaches a continuation. If d is already resolved the continuation is
// scheduled immediately.
func (d *Deferred) Then(fn func(any)) {
	d.mu.Lock()
	if !d.resolved {
		d.then = append(d.then, fn)
		d.mu.Unlock()
		return
	}
	v := d.value
	d.mu.Unlock()
	d.schedule(fn, v)
}

// Done returns a channel closed once d is resolved.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// IsResolved reports whether d has been resolved.
func (d *Deferred) IsResolved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolved
}

// Value returns the resolved value and whether d has been resolved.
func (d *Deferred) Value() (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.resolved
}

func (d *Deferred) schedule(fn func(any), v any) {
	if d.loop == nil {
		fn(v)
		return
	}
	d.loop.Post(func() { fn(v) })
}

// All returns a Deferred that resolves once every element of ds has resolved.
// Its value is the slice of resolved values in argument order. With no
// arguments the result is already resolved.
func All(l *loop.Loop, ds ...*Deferred) *Deferred {
	all := New(l)
	if len(ds) == 0 {
		all.Resolve([]any{})
		return all
	}

	values := make([]any, len(ds))
	remaining := len(ds)
	var mu sync.Mutex
	for i, d := range ds {
		i := i
		d.Then(func(v any) {
			mu.Lock()
			values[i] = v
			remaining--
			last := remaining == 0
			mu.Unlock()
			if last {
				all.Resolve(values)
			}
		})
	}
	return all
}
