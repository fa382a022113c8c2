package internal

// NodeFlags carries the effects and capture state of a render node.
type NodeFlags uint8

const (
	FlagNone     NodeFlags = 0
	FlagCallback NodeFlags = 1 << iota // some applied update has a callback to run at commit
	FlagShouldCapture                  // an error boundary caught an error and must capture it
	FlagDidCapture                     // a capture update was applied during this pass
)

func (f NodeFlags) Has(flag NodeFlags) bool {
	return f&flag != 0
}

func (f *NodeFlags) Set(flag NodeFlags) {
	*f |= flag
}

func (f *NodeFlags) Clear(flag NodeFlags) {
	*f &^= flag
}

func (f *NodeFlags) Replace(old, new NodeFlags) {
	*f = (*f &^ old) | new
}

// Node is the per-instance render node. A committed (current) node and its
// work-in-progress copy point at each other through Alternate.
type Node struct {
	Queue *Queue

	MemoizedState any
	PendingProps  any

	// lanes still holding unprocessed updates after the last pass
	Lanes Lanes
	Flags NodeFlags

	Alternate *Node
	Unmounted bool
}

func NewNode(initial any) *Node {
	return &Node{MemoizedState: initial}
}

// CreateWorkInProgress returns the alternate of current, reset for a new pass.
// The queue is shared with current until CloneUpdateQueue diverges them.
func CreateWorkInProgress(current *Node, props any) *Node {
	wip := current.Alternate
	if wip == nil {
		wip = &Node{Alternate: current}
		current.Alternate = wip
	}

	wip.Queue = current.Queue
	wip.MemoizedState = current.MemoizedState
	wip.PendingProps = props
	wip.Lanes = current.Lanes
	wip.Flags = FlagNone
	wip.Unmounted = current.Unmounted

	return wip
}

// Unmount detaches the queue from both views, later enqueues are dropped.
func Unmount(node *Node) {
	for _, n := range []*Node{node, node.Alternate} {
		if n == nil {
			continue
		}
		n.Queue = nil
		n.Unmounted = true
	}
}
