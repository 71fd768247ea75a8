package v1

import (
	"github.com/gin-gonic/gin"

	"storyweave/internal/infrastructure/realtime"
	httpHandler "storyweave/internal/pkg/story/presentation/http"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, repo repository.StoryRepository, router *realtime.Router) {
	v1 := r.Group("/api/v1")
	// Pass the registry and realtime router down to the HTTP layer
	httpHandler.RegisterRoutes(v1, repo, router)
}
