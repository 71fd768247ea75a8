package usecase

import (
	"context"
	"fmt"

	story "storyweave/internal/pkg/story/application/domain"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// JoinStoryInput identifies the story to join and the joining session.
type JoinStoryInput struct {
	Title     string
	SessionID string
	Name      string
}

// JoinStoryUseCase attaches a session to the tail of an existing story's
// queue. If the queue was empty the joiner becomes head immediately.
type JoinStoryUseCase struct {
	Repo repository.StoryRepository
}

func NewJoinStoryUseCase(repo repository.StoryRepository) *JoinStoryUseCase {
	return &JoinStoryUseCase{Repo: repo}
}

// Execute returns the joined story and the joiner's queue seat. Errors:
// story.ErrNoStories when no stories exist at all, story.ErrStoryNotFound
// for an unknown title, story.ErrAlreadyQueued if the session already holds
// a seat in this story.
func (uc *JoinStoryUseCase) Execute(_ context.Context, in JoinStoryInput) (*story.Story, *story.Member, error) {
	if in.SessionID == "" {
		return nil, nil, fmt.Errorf("session id is required")
	}
	if len(uc.Repo.List()) == 0 {
		return nil, nil, story.ErrNoStories
	}
	if in.Title == "" {
		return nil, nil, fmt.Errorf("title is required")
	}

	st, err := uc.Repo.Get(in.Title)
	if err != nil {
		return nil, nil, err
	}

	m := story.NewMember(in.SessionID, in.Name)
	if err := st.Queue.Join(m); err != nil {
		return nil, nil, err
	}
	return st, m, nil
}
