package story

import "sync"

// TurnQueue is the ordered list of members attached to one story, FIFO with
// round-robin rotation. The member at the front (the head) is the only one
// authorized to contribute right now.
//
// All operations are atomic with respect to each other on the same queue.
// Promotion to head is pushed to the new head's channel by whichever
// goroutine caused it (a join into an empty queue, an advance, or a leave of
// the current head), so a waiting session never has to poll.
type TurnQueue struct {
	mu      sync.Mutex
	members []*Member
}

// NewTurnQueue constructs an empty queue.
func NewTurnQueue() *TurnQueue {
	return &TurnQueue{}
}

// Join appends m at the tail. If the queue was empty, m becomes head
// immediately and is signaled. A member may occupy at most one seat;
// joining twice returns ErrAlreadyQueued.
func (q *TurnQueue) Join(m *Member) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.members {
		if e.SessionID == m.SessionID {
			return ErrAlreadyQueued
		}
	}
	q.members = append(q.members, m)
	if len(q.members) == 1 {
		m.signal()
	}
	return nil
}

// IsHead reports whether m is currently at the front of the queue.
func (q *TurnQueue) IsHead(m *Member) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.members) > 0 && q.members[0].SessionID == m.SessionID
}

// Rank returns the number of members strictly ahead of m (0 for the head),
// or -1 if m is not in the queue.
func (q *TurnQueue) Rank(m *Member) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.members {
		if e.SessionID == m.SessionID {
			return i
		}
	}
	return -1
}

// Advance rotates the head to the tail after a successful contribution and
// signals the new head. Valid only while m holds the turn; otherwise
// ErrNotYourTurn.
//
// With a single member the rotation is a no-op and m is signaled again, so a
// lone writer is re-prompted without waiting.
func (q *TurnQueue) Advance(m *Member) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.members) == 0 || q.members[0].SessionID != m.SessionID {
		return ErrNotYourTurn
	}
	head := q.members[0]
	q.members = append(q.members[1:], head)
	q.members[0].signal()
	return nil
}

// Leave removes m from wherever it sits, preserving the relative order of
// the remainder. If m was head, the new head (if any) is signaled from the
// leaving goroutine so the handoff never waits on the next member's own
// cycle. Leaving a queue m is not in is a no-op.
func (q *TurnQueue) Leave(m *Member) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.members {
		if e.SessionID == m.SessionID {
			q.members = append(q.members[:i], q.members[i+1:]...)
			if i == 0 && len(q.members) > 0 {
				q.members[0].signal()
			}
			return
		}
	}
}

// Members returns a snapshot of the current queue order. The copy is safe to
// iterate while other goroutines join or leave.
func (q *TurnQueue) Members() []*Member {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Member, len(q.members))
	copy(out, q.members)
	return out
}

// Len returns the current number of queued members.
func (q *TurnQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.members)
}
