package story

// Member is one participant's seat in a story's turn queue. It carries the
// session identity plus the promotion channel the session waits on while it
// is not at the head of the queue.
//
// A Member belongs to exactly one TurnQueue at a time (a participant can only
// be queued on one story simultaneously).
type Member struct {
	SessionID string
	Name      string

	promoted chan struct{}
}

// NewMember constructs a queue member for the given session.
func NewMember(sessionID, name string) *Member {
	return &Member{
		SessionID: sessionID,
		Name:      name,
		// Capacity 1: at most one pending promotion matters. A stale signal
		// is harmless because waiters re-check head status after waking.
		promoted: make(chan struct{}, 1),
	}
}

// Promoted yields a signal each time this member becomes head of its queue.
// Receivers must verify head status with TurnQueue.IsHead before acting on it.
func (m *Member) Promoted() <-chan struct{} {
	return m.promoted
}

// signal notifies the member of a promotion without ever blocking the caller.
func (m *Member) signal() {
	select {
	case m.promoted <- struct{}{}:
	default:
	}
}
