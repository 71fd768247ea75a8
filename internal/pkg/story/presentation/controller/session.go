package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storyweave/internal/infrastructure/realtime"
	story "storyweave/internal/pkg/story/application/domain"
	"storyweave/internal/pkg/story/application/usecase"
)

const (
	welcomeText = "Welcome to Collaborative Story Writing!\nEnter your username:"
	menuText    = "\nMAIN MENU\n1. List stories\n2. Create story\n3. Join story\n4. Exit\nChoose:"
	turnText    = "YOUR TURN TO WRITE!\nEnter your word (or 'exit' to leave):"
)

// session is the per-connection state machine. It is driven by exactly one
// goroutine (the connection's handler), so its fields need no locking; all
// shared state lives in the registry, the story aggregates, and the router.
type session struct {
	ctl  *StorySocketController
	conn *realtime.Connection

	name   string
	title  string
	member *story.Member
	st     *story.Story
}

// run walks the participant through the handshake and the menu until the
// user exits or the connection fails. A nil-error return from the menu
// actions means "back to the menu"; a non-nil error means the connection is
// gone and the session is over.
func (s *session) run() {
	if err := s.sendText(frameWelcome, welcomeText); err != nil {
		return
	}
	name, err := s.conn.ReadFrame()
	if err != nil {
		return
	}
	s.name = name
	log.Printf("%s connected", s.name)

	for {
		if err := s.sendText(framePrompt, menuText); err != nil {
			return
		}
		choice, err := s.conn.ReadFrame()
		if err != nil {
			return
		}

		switch {
		case choice == "1":
			err = s.listStories()
		case choice == "2":
			err = s.createStory()
		case choice == "3":
			err = s.joinStory()
		case choice == "4", strings.EqualFold(choice, "exit"):
			_ = s.sendText(frameGoodbye, "Goodbye!")
			log.Printf("%s disconnected", s.name)
			return
		default:
			s.sendError("invalid_choice", "Invalid choice")
		}
		if err != nil {
			return
		}
	}
}

func (s *session) listStories() error {
	titles := s.ctl.listUC.Execute(context.Background())
	if len(titles) == 0 {
		return s.sendText(frameInfo, "No stories available yet")
	}
	var sb strings.Builder
	sb.WriteString("Available Stories:\n")
	for _, title := range titles {
		sb.WriteString("- ")
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	return s.sendText(frameInfo, sb.String())
}

func (s *session) createStory() error {
	if err := s.sendText(framePrompt, "Enter new story title:"); err != nil {
		return err
	}
	title, err := s.conn.ReadFrame()
	if err != nil {
		return err
	}

	st, m, err := s.ctl.createUC.Execute(context.Background(), usecase.CreateStoryInput{
		Title:     title,
		SessionID: s.conn.ID,
		Name:      s.name,
	})
	switch {
	case errors.Is(err, story.ErrStoryExists):
		s.sendError("already_exists", "Story already exists!")
		return nil
	case err != nil:
		s.sendError("bad_request", err.Error())
		return nil
	}

	_ = s.sendText(frameInfo, fmt.Sprintf("Story '%s' created!", title))
	return s.enterStory(st, m)
}

func (s *session) joinStory() error {
	if len(s.ctl.listUC.Execute(context.Background())) == 0 {
		return s.sendText(frameInfo, "No stories available to join")
	}
	if err := s.sendText(framePrompt, "Enter story title to join:"); err != nil {
		return err
	}
	title, err := s.conn.ReadFrame()
	if err != nil {
		return err
	}

	st, m, err := s.ctl.joinUC.Execute(context.Background(), usecase.JoinStoryInput{
		Title:     title,
		SessionID: s.conn.ID,
		Name:      s.name,
	})
	switch {
	case errors.Is(err, story.ErrStoryNotFound):
		s.sendError("not_found", "Story not found")
		return nil
	case errors.Is(err, story.ErrNoStories):
		return s.sendText(frameInfo, "No stories available to join")
	case errors.Is(err, story.ErrAlreadyQueued):
		s.sendError("already_queued", "You are already in this story")
		return nil
	case err != nil:
		s.sendError("bad_request", err.Error())
		return nil
	}

	return s.enterStory(st, m)
}

// enterStory attaches the session to the story's room and runs the turn loop
// until the participant leaves or the connection fails.
func (s *session) enterStory(st *story.Story, m *story.Member) error {
	s.st, s.member, s.title = st, m, st.Title
	s.ctl.router.Join(st.Title, s.conn)
	_ = s.sendText(frameInfo, fmt.Sprintf("\nYou joined: %s\nCurrent story:\n%s", st.Title, st.Text()))
	return s.runStory()
}

// runStory is the wait/turn cycle. While not at the head of the queue the
// session announces its position once per wait episode and then blocks until
// either a promotion signal or a disconnect arrives; no polling. At the head
// it prompts, reads exactly one contribution, and completes the turn.
func (s *session) runStory() error {
	waitingNotified := false
	for {
		if s.st.Queue.IsHead(s.member) {
			waitingNotified = false
			if err := s.takeTurn(); err != nil {
				if errors.Is(err, errLeftStory) {
					return nil
				}
				s.leaveStory()
				return err
			}
			continue
		}

		if !waitingNotified {
			rank := s.st.Queue.Rank(s.member)
			// The notice is sent once per wait episode and is not refreshed
			// when members ahead leave; the next frame this session gets is
			// its turn prompt.
			_ = s.sendText(frameInfo, fmt.Sprintf("Waiting your turn... %d user(s) ahead", rank))
			waitingNotified = true
		}

		select {
		case <-s.member.Promoted():
			// Woken by a join, advance, or leave. Promotion signals can be
			// stale, so the loop re-checks head status before acting.
		case <-s.conn.Done():
			s.leaveStory()
			return realtime.ErrConnectionClosed
		}
	}
}

// errLeftStory marks a voluntary "exit" inside a story: the session returns
// to the menu rather than closing.
var errLeftStory = errors.New("participant left the story")

func (s *session) takeTurn() error {
	payload := marshalFrame(turnFrame{Type: frameTurn, Story: s.st.Text(), Text: turnText})
	if err := s.conn.Send(payload); err != nil {
		return err
	}

	input, err := s.conn.ReadFrame()
	if err != nil {
		return err
	}
	if strings.EqualFold(input, "exit") {
		s.leaveStory()
		_ = s.sendText(frameInfo, "You left the story.")
		return errLeftStory
	}

	if _, err := s.ctl.contributeUC.Execute(context.Background(), usecase.ContributeInput{
		Title:  s.title,
		Member: s.member,
		Text:   input,
	}); err != nil {
		s.sendError("bad_request", err.Error())
		return nil
	}
	log.Printf("%s added to '%s': %s", s.name, s.title, input)
	return nil
}

// leaveStory vacates the session's seat, promoting the next head if this
// session held the turn. It is a no-op when the session is not in a story,
// so the deferred connection cleanup can call it unconditionally.
func (s *session) leaveStory() {
	if s.member == nil {
		return
	}
	_ = s.ctl.leaveUC.Execute(context.Background(), usecase.LeaveStoryInput{
		Title:  s.title,
		Member: s.member,
	})
	s.ctl.router.Leave(s.title, s.conn)
	log.Printf("%s left story: %s", s.name, s.title)
	s.st, s.member, s.title = nil, nil, ""
}

func (s *session) sendText(typ, text string) error {
	return s.conn.Send(marshalFrame(textFrame{Type: typ, Text: text}))
}

func (s *session) sendError(code, msg string) {
	_ = s.conn.Send(marshalFrame(errorFrame{Type: frameError, Code: code, Error: msg}))
}
