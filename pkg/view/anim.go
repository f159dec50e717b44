package view

import (
	"context"
	"time"

	"github.com/vango-dev/hashview/pkg/deferred"
	"github.com/vango-dev/hashview/pkg/dom"
)

// AnimParams configures an animated content replacement.
type AnimParams struct {
	// Duration of each of the leave and enter steps.
	Duration time.Duration

	// EnterClass is added to the incoming node.
	EnterClass string

	// ExitClass replaces EnterClass on the outgoing node.
	ExitClass string
}

type animJob struct {
	ctx    context.Context
	node   *dom.Node
	params AnimParams
	done   *deferred.Deferred
}

// animQueue serializes content replacements of one View.
type animQueue struct {
	jobs    []*animJob
	running bool
}

// SetContentWithAnim replaces the content of the root with n in two timed
// steps. The current first child gets ExitClass in place of EnterClass and
// is removed after Duration; then n is appended with EnterClass and the
// bindings are rebuilt. Requests queue behind the one in progress. The
// returned signal resolves when the enter step has finished.
func (v *View) SetContentWithAnim(n *dom.Node, p AnimParams) *deferred.Deferred {
	return v.SetContentWithAnimContext(context.Background(), n, p)
}

// SetContentWithAnimContext is SetContentWithAnim with a context checked
// before each step. A cancelled request resolves its signal with the context
// error and the queue moves on. A step already waiting is not interrupted.
func (v *View) SetContentWithAnimContext(ctx context.Context, n *dom.Node, p AnimParams) *deferred.Deferred {
	job := &animJob{ctx: ctx, node: n, params: p, done: deferred.New(v.loop)}
	v.anim.jobs = append(v.anim.jobs, job)
	if !v.anim.running {
		v.nextAnim()
	}
	return job.done
}

func (v *View) nextAnim() {
	if len(v.anim.jobs) == 0 {
		v.anim.running = false
		return
	}
	job := v.anim.jobs[0]
	v.anim.jobs[0] = nil
	v.anim.jobs = v.anim.jobs[1:]
	v.anim.running = true

	finish := func(result any) {
		job.done.Resolve(result)
		v.nextAnim()
	}
	if err := job.ctx.Err(); err != nil {
		finish(err)
		return
	}
	v.animLeave(job, func() {
		if err := job.ctx.Err(); err != nil {
			finish(err)
			return
		}
		v.animEnter(job, func() { finish(nil) })
	})
}

func (v *View) animLeave(job *animJob, next func()) {
	cur := v.root.FirstChild()
	if cur == nil {
		next()
		return
	}
	if cur.IsElement() && !cur.ReplaceClass(job.params.EnterClass, job.params.ExitClass) {
		cur.AddClass(job.params.ExitClass)
	}
	v.logger.Debug("leave step", "duration", job.params.Duration)
	v.after(job.params.Duration, func() {
		v.ClearContent()
		next()
	})
}

func (v *View) animEnter(job *animJob, next func()) {
	job.node.AddClass(job.params.EnterClass)
	v.root.AppendChild(job.node)
	v.Rebuild()
	v.logger.Debug("enter step", "duration", job.params.Duration)
	v.after(job.params.Duration, next)
}
