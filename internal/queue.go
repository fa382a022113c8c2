package internal

import (
	"iter"
	"slices"
)

type Queue struct {
	// state before FirstBaseUpdate is applied
	BaseState any

	FirstBaseUpdate *Update
	LastBaseUpdate  *Update

	// shared with the alternate's queue so an enqueue reaches both views
	Shared *SharedQueue

	// applied updates whose callback runs at the next commit
	Effects []*Update

	config *Config
}

func (q *Queue) Config() *Config {
	return q.config
}

// BaseUpdates iterates the base list from FirstBaseUpdate.
func (q *Queue) BaseUpdates() iter.Seq[*Update] {
	return func(yield func(*Update) bool) {
		for u := q.FirstBaseUpdate; u != nil; u = u.next {
			if !yield(u) {
				return
			}
		}
	}
}

func (q *Queue) appendBase(first, last *Update) {
	if q.LastBaseUpdate == nil {
		q.FirstBaseUpdate = first
	} else {
		q.LastBaseUpdate.next = first
	}
	q.LastBaseUpdate = last
}

// pushEffect never grows a backing array a clone may still share.
func (q *Queue) pushEffect(u *Update) {
	q.Effects = append(slices.Clip(q.Effects), u)
}

// InitializeUpdateQueue attaches a fresh queue to a newly created node.
func InitializeUpdateQueue(node *Node, config *Config) {
	node.Queue = &Queue{
		BaseState: node.MemoizedState,
		Shared:    &SharedQueue{},
		config:    config,
	}
}

// CloneUpdateQueue gives wip its own queue if it still shares current's.
// Base list nodes and the pending ring stay shared.
func CloneUpdateQueue(current, wip *Node) {
	if current == nil || wip == nil || wip.Queue == nil || wip.Queue != current.Queue {
		return
	}

	queue := current.Queue
	wip.Queue = &Queue{
		BaseState:       queue.BaseState,
		FirstBaseUpdate: queue.FirstBaseUpdate,
		LastBaseUpdate:  queue.LastBaseUpdate,
		Shared:          queue.Shared,
		Effects:         queue.Effects,
		config:          queue.config,
	}
}

// EnqueueCapturedUpdate appends an update captured by an error boundary to the
// work-in-progress side only. While the queue is still shared with current the
// whole base list is copied first, current's nodes are never touched.
func EnqueueCapturedUpdate(wip *Node, captured *Update) {
	queue := wip.Queue
	if queue == nil {
		return
	}
	captured.next = nil

	if current := wip.Alternate; current != nil && current.Queue == queue {
		var first, last *Update
		for u := range queue.BaseUpdates() {
			clone := u.clone()
			if last == nil {
				first = clone
			} else {
				last.next = clone
			}
			last = clone
		}

		if last == nil {
			first = captured
		} else {
			last.next = captured
		}

		wip.Queue = &Queue{
			BaseState:       queue.BaseState,
			FirstBaseUpdate: first,
			LastBaseUpdate:  captured,
			Shared:          queue.Shared,
			Effects:         queue.Effects,
			config:          queue.config,
		}
		return
	}

	queue.appendBase(captured, captured)
}
