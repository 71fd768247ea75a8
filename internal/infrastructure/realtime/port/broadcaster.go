package port

// Update carries everything a story update message needs: who contributed,
// what they added, and the full text after the append.
type Update struct {
	Title        string
	Contributor  string
	Contribution string
	StoryText    string
}

// Broadcaster fans an update out to every participant currently attached to
// the story except the excluded session (the contributor never receives its
// own update). Implementations must isolate per-recipient delivery failures:
// one dead connection must not block the rest or surface to the caller.
// Returns the number of successful deliveries.
type Broadcaster interface {
	BroadcastUpdate(u Update, excludeSessionID string) int
}
