package usecase

import (
	"context"
	"fmt"

	story "storyweave/internal/pkg/story/application/domain"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// CreateStoryInput carries the data to register a new story. The creator
// joins its queue as part of the same operation.
type CreateStoryInput struct {
	Title     string
	SessionID string
	Name      string
}

// CreateStoryUseCase registers a new story and seats its creator at the head
// of the fresh queue. Creation and join form one transition: the registry
// insert is atomic (insert-if-absent), and joining a queue the caller just
// won cannot fail, so a created-but-unjoined story is never observable.
type CreateStoryUseCase struct {
	Repo repository.StoryRepository
}

func NewCreateStoryUseCase(repo repository.StoryRepository) *CreateStoryUseCase {
	return &CreateStoryUseCase{Repo: repo}
}

// Execute creates the story and joins the creator, returning the story and
// the creator's queue seat. On a title conflict it returns
// story.ErrStoryExists and mutates nothing.
func (uc *CreateStoryUseCase) Execute(_ context.Context, in CreateStoryInput) (*story.Story, *story.Member, error) {
	if in.Title == "" {
		return nil, nil, fmt.Errorf("title is required")
	}
	if in.SessionID == "" {
		return nil, nil, fmt.Errorf("session id is required")
	}

	st, err := uc.Repo.CreateIfAbsent(in.Title)
	if err != nil {
		return nil, nil, err
	}

	m := story.NewMember(in.SessionID, in.Name)
	if err := st.Queue.Join(m); err != nil {
		// Unreachable for a freshly created queue; surfaced for completeness.
		return nil, nil, err
	}
	return st, m, nil
}
