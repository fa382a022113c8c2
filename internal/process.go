package internal

// Result is what a processing pass hands back to the caller.
type Result struct {
	// State is the state after every update with enough priority was applied.
	State any

	// RemainingLanes are the lanes of the updates that were skipped.
	RemainingLanes Lanes

	// ForceUpdate is set when a ForceUpdate was applied during the pass.
	ForceUpdate bool

	Applied int
	Skipped int
}

type pass struct {
	node     *Node
	queue    *Queue
	props    any
	instance any

	forced bool
}

// ProcessUpdateQueue folds the pending and base updates of wip whose lane is
// included in renderLanes. Updates without enough priority are kept, along
// with every update after the first skipped one, so they can be rebased later.
// props and instance are handed to updater payloads.
func ProcessUpdateQueue(wip *Node, props, instance any, renderLanes Lanes) Result {
	queue := wip.Queue

	r := GetRuntime()
	r.ResetForceUpdate()
	defer r.enterProcessing(queue)()

	log := queue.config.logger()

	if first, last := queue.Shared.drain(); first != nil {
		appendPending(wip, queue, first, last)
		log.Debug().Stringer("render_lanes", renderLanes).Log("drained pending updates")
	}

	if queue.FirstBaseUpdate == nil {
		return Result{State: wip.MemoizedState}
	}

	p := &pass{node: wip, queue: queue, props: props, instance: instance}
	scheduler := queue.config.scheduler()

	var (
		res Result

		newState     = queue.BaseState
		newLanes     = NoLanes
		newBaseState any

		newFirstBaseUpdate *Update
		newLastBaseUpdate  *Update
	)

	for update := queue.FirstBaseUpdate; update != nil; update = update.next {
		if !IsSubsetOfLanes(renderLanes, update.Lane) {
			clone := update.clone()
			if newLastBaseUpdate == nil {
				newFirstBaseUpdate = clone
				newBaseState = newState
			} else {
				newLastBaseUpdate.next = clone
			}
			newLastBaseUpdate = clone

			newLanes = MergeLanes(newLanes, update.Lane)
			res.Skipped++

			log.Trace().Stringer("lane", update.Lane).Stringer("kind", update.Kind).Log("skipped update")
		} else {
			if newLastBaseUpdate != nil {
				// NoLane is a subset of every render, the clone is never skipped again
				clone := update.clone()
				clone.Lane = NoLane
				newLastBaseUpdate.next = clone
				newLastBaseUpdate = clone
			}

			if scheduler != nil {
				scheduler.MarkRenderEventTimeAndConfig(update.EventTime, update.SuspenseConfig)
			}

			newState = p.apply(update, newState)
			if update.HasCallback() {
				wip.Flags.Set(FlagCallback)
				queue.pushEffect(update)
			}
			res.Applied++

			log.Trace().Stringer("lane", update.Lane).Stringer("kind", update.Kind).Log("applied update")
		}

		// an updater may have enqueued more work, keep walking into it
		if update.next == nil && !queue.Shared.Empty() {
			first, last := queue.Shared.drain()
			appendPending(wip, queue, first, last)
		}
	}

	if newLastBaseUpdate == nil {
		newBaseState = newState
	}

	queue.BaseState = newBaseState
	queue.FirstBaseUpdate = newFirstBaseUpdate
	queue.LastBaseUpdate = newLastBaseUpdate

	if scheduler != nil {
		scheduler.MarkSkippedUpdateLanes(newLanes)
	}
	wip.Lanes = newLanes
	wip.MemoizedState = newState

	res.State = newState
	res.RemainingLanes = newLanes
	res.ForceUpdate = p.forced

	log.Debug().
		Stringer("render_lanes", renderLanes).
		Stringer("remaining_lanes", newLanes).
		Int("applied", res.Applied).
		Int("skipped", res.Skipped).
		Bool("force_update", res.ForceUpdate).
		Log("processed update queue")

	return res
}

// appendPending links a drained chain after the base list of wip and mirrors
// it onto current, so discarding wip can never lose the drained updates.
func appendPending(wip *Node, queue *Queue, first, last *Update) {
	queue.appendBase(first, last)

	current := wip.Alternate
	if current == nil || current.Queue == nil || current.Queue == queue {
		return
	}

	if currentQueue := current.Queue; currentQueue.LastBaseUpdate != last {
		currentQueue.appendBase(first, last)
	}
}

// apply is the reducer, it maps the previous state and one update to the next state.
func (p *pass) apply(update *Update, prev any) any {
	config := p.queue.config

	switch update.Kind {
	case ReplaceState:
		next, ok := update.Payload.resolve(prev, p.props, p.instance, config.strict())
		if !ok {
			return nil
		}
		return next

	case CaptureUpdate:
		p.node.Flags.Replace(FlagShouldCapture, FlagDidCapture)
		fallthrough

	case SetState:
		fragment, ok := update.Payload.resolve(prev, p.props, p.instance, config.strict())
		if !ok {
			return prev
		}
		return config.merge(prev, fragment)

	case ForceUpdate:
		p.forced = true
		GetRuntime().hasForceUpdate = true
		return prev

	default:
		return prev
	}
}
