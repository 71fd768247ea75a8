package usecase

import (
	"context"
	"fmt"

	story "storyweave/internal/pkg/story/application/domain"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// GetStoryInput wraps the title to look up.
type GetStoryInput struct {
	Title string
}

// GetStoryUseCase fetches a single story for the read-only HTTP surface.
type GetStoryUseCase struct {
	Repo repository.StoryRepository
}

func NewGetStoryUseCase(repo repository.StoryRepository) *GetStoryUseCase {
	return &GetStoryUseCase{Repo: repo}
}

func (uc *GetStoryUseCase) Execute(_ context.Context, in GetStoryInput) (*story.Story, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	return uc.Repo.Get(in.Title)
}
