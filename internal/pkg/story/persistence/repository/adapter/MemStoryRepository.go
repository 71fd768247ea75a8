package adapter

import (
	"sync"

	story "storyweave/internal/pkg/story/application/domain"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// MemStoryRepository implements the StoryRepository port with an in-memory
// map. All application state is volatile and lives only as long as the
// process, so no database sits behind this adapter.
//
// The RWMutex guards only the registry itself (the map and the title order);
// each story carries its own locks, so work inside one story never contends
// with lookups or with other stories.
type MemStoryRepository struct {
	mu      sync.RWMutex
	stories map[string]*story.Story
	titles  []string // creation order
}

// NewMemStoryRepository constructs an empty registry.
func NewMemStoryRepository() *MemStoryRepository {
	return &MemStoryRepository{
		stories: make(map[string]*story.Story),
	}
}

// Ensure interface is satisfied
var _ repository.StoryRepository = (*MemStoryRepository)(nil)

func (r *MemStoryRepository) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.titles))
	copy(out, r.titles)
	return out
}

func (r *MemStoryRepository) CreateIfAbsent(title string) (*story.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stories[title]; ok {
		return nil, story.ErrStoryExists
	}
	st := story.NewStory(title)
	r.stories[title] = st
	r.titles = append(r.titles, title)
	return st, nil
}

func (r *MemStoryRepository) Get(title string) (*story.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.stories[title]
	if !ok {
		return nil, story.ErrStoryNotFound
	}
	return st, nil
}
