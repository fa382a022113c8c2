package internal

// SharedQueue is the pending ring both views of a queue append to.
// pending is the tail, pending.next the head.
type SharedQueue struct {
	pending *Update
}

func (s *SharedQueue) append(u *Update) {
	if s.pending == nil {
		u.next = u // loop to self
	} else {
		u.next = s.pending.next
		s.pending.next = u
	}

	s.pending = u
}

// drain breaks the cycle and hands back the linear chain, leaving the ring empty.
func (s *SharedQueue) drain() (first, last *Update) {
	if s.pending == nil {
		return nil, nil
	}

	last = s.pending
	first = last.next
	last.next = nil
	s.pending = nil

	return first, last
}

func (s *SharedQueue) Empty() bool {
	return s.pending == nil
}

// Len walks the ring, it is only meant for inspection.
func (s *SharedQueue) Len() int {
	if s.pending == nil {
		return 0
	}

	n := 1
	for u := s.pending.next; u != s.pending; u = u.next {
		n++
	}
	return n
}

// Lanes merges the lanes of every pending update.
func (s *SharedQueue) Lanes() Lanes {
	if s.pending == nil {
		return NoLanes
	}

	lanes := s.pending.Lane
	for u := s.pending.next; u != s.pending; u = u.next {
		lanes = MergeLanes(lanes, u.Lane)
	}
	return lanes
}
