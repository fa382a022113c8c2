package internal

// CommitUpdateQueue runs the callbacks of the updates applied by the committed
// pass, in application order. Each callback is cleared before it runs, which
// also clears it for every clone of the update. An invalid callback stops the
// run; the effects after it stay on the queue for the next commit.
func CommitUpdateQueue(queue *Queue, instance any) error {
	effects := queue.Effects
	queue.Effects = nil

	log := queue.config.logger()

	for i, effect := range effects {
		cell := effect.callback
		if cell == nil || cell.fn == nil {
			continue
		}

		callback := cell.fn
		cell.fn = nil

		switch fn := callback.(type) {
		case func():
			fn()
		case func(any):
			fn(instance)
		default:
			queue.Effects = effects[i+1:]
			err := &CallbackError{Op: "CommitUpdateQueue", Index: i, Callback: callback}
			log.Err().Err(err).Log("commit aborted")
			return err
		}
	}

	log.Debug().Int("effects", len(effects)).Log("committed update queue")

	return nil
}
