package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storyweave/internal/infrastructure/realtime"
	"storyweave/internal/pkg/story/application/usecase"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// StorySocketController owns the websocket endpoint. Each accepted
// connection becomes one participant session: a goroutine that walks the
// user through the menu and, inside a story, through the wait/turn cycle.
type StorySocketController struct {
	router       *realtime.Router
	listUC       *usecase.ListStoriesUseCase
	createUC     *usecase.CreateStoryUseCase
	joinUC       *usecase.JoinStoryUseCase
	contributeUC *usecase.ContributeUseCase
	leaveUC      *usecase.LeaveStoryUseCase
}

func NewStorySocketController(repo repository.StoryRepository, router *realtime.Router) *StorySocketController {
	push := NewUpdateBroadcaster(router)
	return &StorySocketController{
		router:       router,
		listUC:       usecase.NewListStoriesUseCase(repo),
		createUC:     usecase.NewCreateStoryUseCase(repo),
		joinUC:       usecase.NewJoinStoryUseCase(repo),
		contributeUC: usecase.NewContributeUseCase(repo, push),
		leaveUC:      usecase.NewLeaveStoryUseCase(repo),
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

// Handle upgrades the HTTP connection and runs the participant session until
// the user exits or the connection dies. Cleanup always runs exactly once:
// whatever state the session was in, its story seat (if any) is vacated and
// the connection is released.
func (ctl *StorySocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.router.Attach(conn)

		s := &session{ctl: ctl, conn: conn}
		defer func() {
			s.leaveStory()
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		s.run()
	}
}
