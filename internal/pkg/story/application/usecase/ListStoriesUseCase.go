package usecase

import (
	"context"

	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// ListStoriesUseCase returns the titles of every story in creation order.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type ListStoriesUseCase struct {
	Repo repository.StoryRepository
}

func NewListStoriesUseCase(repo repository.StoryRepository) *ListStoriesUseCase {
	return &ListStoriesUseCase{Repo: repo}
}

func (uc *ListStoriesUseCase) Execute(_ context.Context) []string {
	return uc.Repo.List()
}
