package handler

import (
	"net/http"

	"adventure-server/internal/service"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"
)

// StoryHandler exposes the story generation and retrieval API.
type StoryHandler struct {
	storyService service.StoryService
	images       service.ImageGenerator
	logger       *zap.Logger
}

func NewStoryHandler(storyService service.StoryService, images service.ImageGenerator, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		images:       images,
		logger:       logger.Named("StoryHandler"),
	}
}

func (h *StoryHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.GET("/jobs/:job_id", h.getJob)

	storyGroup := router.Group("/stories")
	{
		storyGroup.POST("/create", h.createStory)
		storyGroup.GET("/:story_id/complete", h.getCompleteStory)
		storyGroup.GET("/user/:session_id", h.listSessionStories)
		storyGroup.POST("/generate-scene-image", h.generateSceneImage)
	}
}

func (h *StoryHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
