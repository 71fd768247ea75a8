package usecase

import (
	"context"
	"fmt"

	story "storyweave/internal/pkg/story/application/domain"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// LeaveStoryInput identifies the seat being vacated.
type LeaveStoryInput struct {
	Title  string
	Member *story.Member
}

// LeaveStoryUseCase removes a member from a story's queue. If the leaver
// held the turn, the next member is promoted and signaled from this call, so
// an exit or disconnect never stalls the rotation.
type LeaveStoryUseCase struct {
	Repo repository.StoryRepository
}

func NewLeaveStoryUseCase(repo repository.StoryRepository) *LeaveStoryUseCase {
	return &LeaveStoryUseCase{Repo: repo}
}

func (uc *LeaveStoryUseCase) Execute(_ context.Context, in LeaveStoryInput) error {
	if in.Member == nil {
		return fmt.Errorf("member is required")
	}
	st, err := uc.Repo.Get(in.Title)
	if err != nil {
		return err
	}
	st.Queue.Leave(in.Member)
	return nil
}
