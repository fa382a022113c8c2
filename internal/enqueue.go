package internal

// EnqueueUpdate appends update to the node's pending ring. A node without a
// queue has been unmounted and the update is dropped.
func EnqueueUpdate(node *Node, update *Update) {
	if node == nil || node.Queue == nil {
		return
	}
	queue := node.Queue

	r := GetRuntime()
	if r.IsProcessing(queue) && !r.didWarnUpdateInsideUpdate {
		r.didWarnUpdateInsideUpdate = true
		queue.config.logger().Warning().
			Stringer("lane", update.Lane).
			Stringer("kind", update.Kind).
			Log("an update was scheduled from inside an update function, updaters should be pure")
	}

	queue.Shared.append(update)

	queue.config.logger().Trace().
		Stringer("lane", update.Lane).
		Stringer("kind", update.Kind).
		Int64("event_time", update.EventTime).
		Log("enqueued update")
}
