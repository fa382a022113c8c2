package updatequeue

import (
	"errors"
	"time"

	"github.com/AnatoleLucet/updatequeue/internal"
)

// ErrPassDone is returned when a pass is used after it was committed, discarded or superseded.
var ErrPassDone = errors.New("updatequeue: pass is no longer in flight")

// Component owns the committed state of one instance and the update log feeding it.
type Component[S any] struct {
	current  *internal.Node
	config   *internal.Config
	instance any

	// the pass currently in flight, if any
	pass *Pass[S]
}

// NewComponent mounts a component with the given initial state.
func NewComponent[S any](initial S, opts ...Option) *Component[S] {
	config := resolveOptions(opts)

	node := internal.NewNode(initial)
	internal.InitializeUpdateQueue(node, config)

	return &Component[S]{
		current: node,
		config:  config,
	}
}

// Bind sets the instance handed to instance updaters during Render.
func (c *Component[S]) Bind(instance any) *Component[S] {
	c.instance = instance
	return c
}

// State returns the last committed state.
func (c *Component[S]) State() S {
	return as[S](c.current.MemoizedState)
}

// Mounted reports whether updates are still accepted.
func (c *Component[S]) Mounted() bool {
	return c.current.Queue != nil
}

// PendingLanes returns the lanes of every update not yet committed.
func (c *Component[S]) PendingLanes() Lanes {
	queue := c.current.Queue
	if queue == nil {
		return NoLanes
	}

	lanes := c.current.Lanes
	for u := range queue.BaseUpdates() {
		lanes = internal.MergeLanes(lanes, u.Lane)
	}
	return internal.MergeLanes(lanes, queue.Shared.Lanes())
}

// Enqueue appends u to the log. It is dropped if the component is unmounted.
func (c *Component[S]) Enqueue(u *Update[S]) {
	if c.current.Queue == nil {
		c.config.Logger.Debug().
			Stringer("lane", u.update.Lane).
			Stringer("kind", u.update.Kind).
			Log("dropped update for unmounted component")
		return
	}

	internal.EnqueueUpdate(c.current, u.update)
}

// SetState enqueues a fragment to merge over the state.
func (c *Component[S]) SetState(lane Lanes, fragment S) *Update[S] {
	u := NewUpdate[S](now(), lane, nil).WithFragment(fragment)
	c.Enqueue(u)
	return u
}

// ReplaceState enqueues a state that replaces the current one.
func (c *Component[S]) ReplaceState(lane Lanes, state S) *Update[S] {
	u := NewUpdate[S](now(), lane, nil).WithKind(ReplaceState).WithFragment(state)
	c.Enqueue(u)
	return u
}

// ForceUpdate enqueues an update that leaves the state alone but forces a re-render.
func (c *Component[S]) ForceUpdate(lane Lanes) *Update[S] {
	u := NewUpdate[S](now(), lane, nil).WithKind(ForceUpdate)
	c.Enqueue(u)
	return u
}

// Render starts a pass at the given lanes and processes the log.
// A pass still in flight is superseded and can no longer be committed.
func (c *Component[S]) Render(lanes Lanes, props any) *Pass[S] {
	if c.pass != nil {
		c.pass.done = true
	}

	wip := internal.CreateWorkInProgress(c.current, props)
	internal.CloneUpdateQueue(c.current, wip)

	p := &Pass[S]{
		component: c,
		wip:       wip,
		lanes:     lanes,
		props:     props,
	}
	c.pass = p
	p.process()

	return p
}

// Unmount detaches the log, later updates are dropped.
func (c *Component[S]) Unmount() {
	if c.pass != nil {
		c.pass.done = true
		c.pass = nil
	}
	internal.Unmount(c.current)
}

// Pass is one render of a component at a set of lanes.
type Pass[S any] struct {
	component *Component[S]
	wip       *internal.Node

	lanes Lanes
	props any

	result     internal.Result
	didCapture bool
	done       bool
}

func (p *Pass[S]) process() {
	if p.wip.Queue == nil {
		p.result = internal.Result{State: p.wip.MemoizedState}
		return
	}
	p.result = internal.ProcessUpdateQueue(p.wip, p.props, p.component.instance, p.lanes)
	// the node is reset by the next Render, keep the flag with the pass
	p.didCapture = p.wip.Flags.Has(internal.FlagDidCapture)
}

// State is the state this pass would commit.
func (p *Pass[S]) State() S { return as[S](p.result.State) }

// Lanes are the lanes this pass renders.
func (p *Pass[S]) Lanes() Lanes { return p.lanes }

// RemainingLanes are the lanes of the updates this pass skipped.
func (p *Pass[S]) RemainingLanes() Lanes { return p.result.RemainingLanes }

// ForceUpdate reports whether a ForceUpdate was applied, including by a run
// before the last Capture.
func (p *Pass[S]) ForceUpdate() bool { return p.result.ForceUpdate }

// Applied and Skipped count the last processing run only, a Capture reprocesses
// the rebased list.
func (p *Pass[S]) Applied() int { return p.result.Applied }

func (p *Pass[S]) Skipped() int { return p.result.Skipped }

// DidCapture reports whether a captured update was applied.
func (p *Pass[S]) DidCapture() bool { return p.didCapture }

// Capture hands an error boundary update to this pass and processes it again.
// The update only lands on the work-in-progress side.
func (p *Pass[S]) Capture(u *Update[S]) error {
	if p.done {
		return ErrPassDone
	}
	if p.wip.Queue == nil {
		return nil
	}

	forced := p.result.ForceUpdate

	p.wip.Flags.Set(internal.FlagShouldCapture)
	internal.EnqueueCapturedUpdate(p.wip, u.update)
	p.process()

	p.result.ForceUpdate = p.result.ForceUpdate || forced

	return nil
}

// Commit makes the pass the committed state, then runs the callbacks of the
// updates it applied with instance.
func (p *Pass[S]) Commit(instance any) error {
	if p.done {
		return ErrPassDone
	}
	p.done = true

	c := p.component
	c.pass = nil
	c.current = p.wip

	if p.wip.Queue == nil {
		return nil
	}
	return internal.CommitUpdateQueue(p.wip.Queue, instance)
}

// Discard throws the pass away. Nothing it did is visible on the component.
func (p *Pass[S]) Discard() {
	if p.done {
		return
	}
	p.done = true

	if c := p.component; c.pass == p {
		c.pass = nil
	}
}

func now() int64 {
	return time.Now().UnixNano()
}
