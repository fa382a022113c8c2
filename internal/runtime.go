package internal

// Runtime holds the per-goroutine processing state. Rendering is single
// threaded and re-entrant, each goroutine driving renders gets its own runtime.
type Runtime struct {
	// set by a ForceUpdate applied during the last processing pass
	hasForceUpdate bool

	// the queue whose updates are being folded right now, nil outside a pass
	processing *Queue

	didWarnUpdateInsideUpdate bool
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

func (r *Runtime) ResetForceUpdate() {
	r.hasForceUpdate = false
}

func (r *Runtime) HasForceUpdate() bool {
	return r.hasForceUpdate
}

// IsProcessing reports whether q (or a queue sharing its pending ring) is being processed.
func (r *Runtime) IsProcessing(q *Queue) bool {
	return r.processing != nil && q != nil && r.processing.Shared == q.Shared
}

func (r *Runtime) enterProcessing(q *Queue) (restore func()) {
	prev := r.processing
	r.processing = q
	return func() { r.processing = prev }
}
