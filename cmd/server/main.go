package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "storyweave/cmd/server/router/v1"
	"storyweave/internal/infrastructure/realtime"
	"storyweave/internal/pkg/story/persistence/repository/adapter"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// All story state is in-memory and lives as long as the process
	repo := adapter.NewMemStoryRepository()
	rt := realtime.NewRouter()
	defer rt.Close()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, repo, rt)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	log.Printf("Story server running on %s", addr)

	// Failing to bind the listening port is the one unrecoverable error
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
