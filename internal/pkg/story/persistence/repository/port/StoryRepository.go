package repository

import (
	story "storyweave/internal/pkg/story/application/domain"
)

// StoryRepository is the registry of all stories known to the process. It is
// the one process-wide shared structure; implementations must be safe for
// concurrent use by every participant session.
//
// There is deliberately no delete: stories live for the process lifetime.
type StoryRepository interface {
	// List returns every story title in creation order.
	List() []string

	// CreateIfAbsent atomically inserts a new empty story under title and
	// returns it. If a story with that title already exists the insert is
	// not performed and story.ErrStoryExists is returned. This single
	// primitive replaces any check-then-insert sequence, which would race
	// between two concurrent creators.
	CreateIfAbsent(title string) (*story.Story, error)

	// Get returns the story registered under title, or story.ErrStoryNotFound.
	Get(title string) (*story.Story, error)
}
