package controller

import (
	"storyweave/internal/infrastructure/realtime"
	rtport "storyweave/internal/infrastructure/realtime/port"
)

// UpdateBroadcaster implements the broadcaster port on top of the realtime
// router: it encodes the update as a wire frame and fans it out to the
// story's room, skipping the contributor's own session.
type UpdateBroadcaster struct {
	router *realtime.Router
}

func NewUpdateBroadcaster(router *realtime.Router) *UpdateBroadcaster {
	return &UpdateBroadcaster{router: router}
}

// Ensure interface is satisfied
var _ rtport.Broadcaster = (*UpdateBroadcaster)(nil)

func (b *UpdateBroadcaster) BroadcastUpdate(u rtport.Update, excludeSessionID string) int {
	payload := marshalFrame(updateFrame{
		Type:         frameUpdate,
		Contributor:  u.Contributor,
		Contribution: u.Contribution,
		Story:        u.StoryText,
	})
	if payload == nil {
		return 0
	}
	return b.router.Broadcast(u.Title, payload, excludeSessionID)
}
