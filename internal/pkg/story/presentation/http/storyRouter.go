package http

import (
	"github.com/gin-gonic/gin"

	"storyweave/internal/infrastructure/realtime"
	"storyweave/internal/pkg/story/presentation/controller"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// RegisterRoutes registers story-related endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, repo repository.StoryRepository, router *realtime.Router) {
	listCtl := controller.NewListStoriesController(repo)
	getCtl := controller.NewGetStoryController(repo)
	socketCtl := controller.NewStorySocketController(repo, router)

	// GET /api/v1/stories -> list story titles in creation order
	g.GET("/stories", listCtl.Handle())

	// GET /api/v1/story/:title -> read-only story detail (text + participants)
	g.GET("/story/:title", getCtl.Handle())

	// GET /api/v1/ws -> websocket endpoint carrying the participant session
	g.GET("/ws", socketCtl.Handle())
}
