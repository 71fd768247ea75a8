package story

import "sync"

// Story is the domain aggregate for one collaborative story: the accumulated
// text plus the turn queue that governs who may extend it.
//
// Notes:
//   - The title is immutable once set and identifies the story for its whole
//     lifetime; stories are never deleted.
//   - The text is append-only. It is mutated exclusively by the participant
//     holding the turn, under the story's own lock, so a reader building a
//     prompt or broadcast never observes a partial append.
//   - Each story guards its own state; unrelated stories never contend.
type Story struct {
	Title string
	Queue *TurnQueue

	mu   sync.Mutex
	text string
}

// NewStory constructs an empty story with an empty queue.
func NewStory(title string) *Story {
	return &Story{
		Title: title,
		Queue: NewTurnQueue(),
	}
}

// Append adds one accepted contribution followed by a single space and
// returns the resulting full text.
func (s *Story) Append(contribution string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text += contribution + " "
	return s.text
}

// Text returns a snapshot of the current full story text.
func (s *Story) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}
