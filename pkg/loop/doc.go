// Package loop provides the single-threaded cooperative event loop that
// owns every UI node, View and Dispatcher in hashview.
//
// All mutation of a node tree happens on the loop. Other goroutines hand work
// to it with Post, and delayed work is scheduled with AfterFunc. Nothing on
// the loop blocks: deferred values, focus re-checks and animation steps are
// all expressed as tasks that post further tasks.
//
// # Usage
//
//	l := loop.New()
//	go l.Run(ctx)
//
//	l.Post(func() {
//	    view.SetData(map[string]any{"title": "Hello"})
//	})
//
// Tests usually skip Run and drain the queue on the test goroutine:
//
//	clock := loop.NewFakeClock(time.Unix(0, 0))
//	l := loop.New(loop.WithClock(clock))
//	l.Post(task)
//	clock.Advance(10 * time.Millisecond)
//	l.RunPending()
package loop
