package usecase

import (
	"context"
	"fmt"

	rtport "storyweave/internal/infrastructure/realtime/port"
	story "storyweave/internal/pkg/story/application/domain"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// ContributeInput carries one accepted unit of text from the member that
// currently holds the turn.
type ContributeInput struct {
	Title  string
	Member *story.Member
	Text   string
}

// ContributeUseCase appends a contribution to a story and completes the
// turn: append under the story's lock, fan the update out to everyone else
// on the story, then rotate the queue. Broadcast failures never reach the
// contributor's completion path.
type ContributeUseCase struct {
	Repo repository.StoryRepository
	Push rtport.Broadcaster
}

func NewContributeUseCase(repo repository.StoryRepository, push rtport.Broadcaster) *ContributeUseCase {
	return &ContributeUseCase{Repo: repo, Push: push}
}

// Execute returns the full story text after the append. A member that does
// not hold the turn gets story.ErrNotYourTurn and mutates nothing.
func (uc *ContributeUseCase) Execute(_ context.Context, in ContributeInput) (string, error) {
	if in.Member == nil {
		return "", fmt.Errorf("member is required")
	}

	st, err := uc.Repo.Get(in.Title)
	if err != nil {
		return "", err
	}
	if !st.Queue.IsHead(in.Member) {
		return "", story.ErrNotYourTurn
	}

	full := st.Append(in.Text)

	uc.Push.BroadcastUpdate(rtport.Update{
		Title:        in.Title,
		Contributor:  in.Member.Name,
		Contribution: in.Text,
		StoryText:    full,
	}, in.Member.SessionID)

	if err := st.Queue.Advance(in.Member); err != nil {
		return "", err
	}
	return full, nil
}
