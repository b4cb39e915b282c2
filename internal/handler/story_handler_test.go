package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adventure-server/internal/mocks"
	"adventure-server/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func setupRouter(svc *mocks.MockStoryService, images *mocks.MockImageGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStoryHandler(svc, images, zap.NewNop()).RegisterRoutes(router)
	return router
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateStory(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		job := &model.StoryJob{
			JobID:     "job-123",
			SessionID: "session-1",
			Theme:     "a lost cave",
			Status:    model.JobStatusPending,
			CreatedAt: time.Now(),
		}
		svc.On("StartGeneration", mock.Anything, "a lost cave", "session-1").
			Return(job, nil).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodPost, "/stories/create",
			`{"theme": "a lost cave", "session_id": "session-1"}`)

		assert.Equal(t, http.StatusAccepted, w.Code)

		var resp model.StoryJobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "job-123", resp.JobID)
		assert.Equal(t, model.JobStatusPending, resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("missing theme is a bad request", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		router := setupRouter(svc, mocks.NewMockImageGenerator(t))

		w := performRequest(router, http.MethodPost, "/stories/create",
			`{"session_id": "session-1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeBadRequest, resp.Code)
		svc.AssertNotCalled(t, "StartGeneration", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service failure is an internal error", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("StartGeneration", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db down")).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodPost, "/stories/create",
			`{"theme": "a lost cave", "session_id": "session-1"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetJob(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		storyID := int64(7)
		svc := mocks.NewMockStoryService(t)
		svc.On("GetJob", mock.Anything, "job-123").
			Return(&model.StoryJob{
				JobID:   "job-123",
				Status:  model.JobStatusCompleted,
				StoryID: &storyID,
			}, nil).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/jobs/job-123", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.StoryJobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.JobStatusCompleted, resp.Status)
		require.NotNil(t, resp.StoryID)
		assert.Equal(t, storyID, *resp.StoryID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("GetJob", mock.Anything, "missing").
			Return(nil, model.ErrJobNotFound).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/jobs/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeJobNotFound, resp.Code)
	})
}

func TestGetCompleteStory(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("GetCompleteStory", mock.Anything, int64(42)).
			Return(&model.CompleteStoryResponse{
				ID:    42,
				Title: "The Lost Cave",
				RootNode: model.CompleteStoryNodeResponse{
					ID:      1,
					Content: "You stand at the mouth of a dark cave.",
				},
				AllNodes: map[int64]model.CompleteStoryNodeResponse{
					1: {ID: 1, Content: "You stand at the mouth of a dark cave."},
				},
			}, nil).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/stories/42/complete", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.CompleteStoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "The Lost Cave", resp.Title)
		assert.Equal(t, int64(1), resp.RootNode.ID)
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		router := setupRouter(svc, mocks.NewMockImageGenerator(t))

		w := performRequest(router, http.MethodGet, "/stories/abc/complete", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetCompleteStory", mock.Anything, mock.Anything)
	})

	t.Run("unknown story", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("GetCompleteStory", mock.Anything, int64(42)).
			Return(nil, model.ErrStoryNotFound).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/stories/42/complete", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("story without root is an internal error", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("GetCompleteStory", mock.Anything, int64(42)).
			Return(nil, model.ErrRootNotFound).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/stories/42/complete", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListSessionStories(t *testing.T) {
	t.Run("returns the session's stories", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("ListSessionStories", mock.Anything, "session-1").
			Return([]model.StorySummary{
				{ID: 2, Title: "Second"},
				{ID: 1, Title: "First"},
			}, nil).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/stories/user/session-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []model.StorySummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Second", resp[0].Title)
	})

	t.Run("no stories yields an empty array", func(t *testing.T) {
		svc := mocks.NewMockStoryService(t)
		svc.On("ListSessionStories", mock.Anything, "session-1").
			Return(nil, nil).Once()

		router := setupRouter(svc, mocks.NewMockImageGenerator(t))
		w := performRequest(router, http.MethodGet, "/stories/user/session-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestGenerateSceneImage(t *testing.T) {
	t.Run("returns the image url", func(t *testing.T) {
		images := mocks.NewMockImageGenerator(t)
		images.On("GenerateSceneImage", mock.Anything, "a dark cave").
			Return("https://img.example/cave.png", nil).Once()

		router := setupRouter(mocks.NewMockStoryService(t), images)
		w := performRequest(router, http.MethodPost, "/stories/generate-scene-image",
			`{"scene_description": "a dark cave"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"image_url": "https://img.example/cave.png"}`, w.Body.String())
	})

	t.Run("missing description degrades into the payload", func(t *testing.T) {
		images := mocks.NewMockImageGenerator(t)
		router := setupRouter(mocks.NewMockStoryService(t), images)

		w := performRequest(router, http.MethodPost, "/stories/generate-scene-image", `{}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"error": "No description provided"}`, w.Body.String())
		images.AssertNotCalled(t, "GenerateSceneImage", mock.Anything, mock.Anything)
	})

	t.Run("generation failure degrades into the payload", func(t *testing.T) {
		images := mocks.NewMockImageGenerator(t)
		images.On("GenerateSceneImage", mock.Anything, "a dark cave").
			Return("", errors.New("image API unavailable")).Once()

		router := setupRouter(mocks.NewMockStoryService(t), images)
		w := performRequest(router, http.MethodPost, "/stories/generate-scene-image",
			`{"scene_description": "a dark cave"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"image_url": null}`, w.Body.String())
	})
}

func TestHealth(t *testing.T) {
	router := setupRouter(mocks.NewMockStoryService(t), mocks.NewMockImageGenerator(t))
	w := performRequest(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}
