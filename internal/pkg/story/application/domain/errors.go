package story

import "errors"

// Domain-level errors for story behaviors
var (
	ErrStoryExists   = errors.New("story: a story with this title already exists")
	ErrStoryNotFound = errors.New("story: story not found")
	ErrNoStories     = errors.New("story: no stories available")
	ErrAlreadyQueued = errors.New("story: participant is already in the queue")
	ErrNotYourTurn   = errors.New("story: participant does not hold the turn")
)
