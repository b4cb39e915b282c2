package handler

import (
	"net/http"
	"strconv"

	"adventure-server/internal/model"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"
)

type generateSceneImageRequest struct {
	SceneDescription string `json:"scene_description"`
}

// createStory records a generation job and schedules the pipeline in
// the background. The client polls the returned job id for the result.
func (h *StoryHandler) createStory(c *gin.Context) {
	var req model.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	job, err := h.storyService.StartGeneration(c.Request.Context(), req.Theme, req.SessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job.ToResponse())
}

// getJob returns the current state of a generation job.
func (h *StoryHandler) getJob(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.storyService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job.ToResponse())
}

// getCompleteStory returns the full story tree in one response.
func (h *StoryHandler) getCompleteStory(c *gin.Context) {
	storyID, err := strconv.ParseInt(c.Param("story_id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid story id")
		return
	}

	story, err := h.storyService.GetCompleteStory(c.Request.Context(), storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

// listSessionStories returns summaries of a session's stories.
func (h *StoryHandler) listSessionStories(c *gin.Context) {
	sessionID := c.Param("session_id")

	summaries, err := h.storyService.ListSessionStories(c.Request.Context(), sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if summaries == nil {
		summaries = []model.StorySummary{}
	}

	c.JSON(http.StatusOK, summaries)
}

// generateSceneImage produces an illustration for a scene. Failures
// degrade into the payload instead of an error status: the image is a
// nicety and the client renders the scene without it.
func (h *StoryHandler) generateSceneImage(c *gin.Context) {
	var req generateSceneImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SceneDescription == "" {
		c.JSON(http.StatusOK, gin.H{"error": "No description provided"})
		return
	}

	url, err := h.images.GenerateSceneImage(c.Request.Context(), req.SceneDescription)
	if err != nil {
		h.logger.Warn("Scene image generation failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"image_url": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
