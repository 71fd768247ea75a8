package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	story "storyweave/internal/pkg/story/application/domain"
	"storyweave/internal/pkg/story/application/usecase"
	repository "storyweave/internal/pkg/story/persistence/repository/port"
)

// GetStoryController handles the read-only story detail endpoint
// One controller per endpoint

type GetStoryController struct {
	UC *usecase.GetStoryUseCase
}

func NewGetStoryController(repo repository.StoryRepository) *GetStoryController {
	return &GetStoryController{UC: usecase.NewGetStoryUseCase(repo)}
}

func (h *GetStoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := h.UC.Execute(c.Request.Context(), usecase.GetStoryInput{Title: c.Param("title")})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, story.ErrStoryNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		members := st.Queue.Members()
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, m.Name)
		}
		c.JSON(http.StatusOK, gin.H{
			"title":        st.Title,
			"text":         st.Text(),
			"participants": names,
		})
	}
}
