package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyweave/internal/pkg/story/application/usecase"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// ListStoriesController handles the story listing endpoint
// One controller per endpoint

type ListStoriesController struct {
	UC *usecase.ListStoriesUseCase
}

func NewListStoriesController(repo repository.StoryRepository) *ListStoriesController {
	return &ListStoriesController{UC: usecase.NewListStoriesUseCase(repo)}
}

func (h *ListStoriesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		titles := h.UC.Execute(c.Request.Context())
		if titles == nil {
			titles = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"stories": titles})
	}
}
