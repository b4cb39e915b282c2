package handler

import (
	"errors"
	"net/http"

	"adventure-server/internal/model"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp model.ErrorResponse

	switch {
	case errors.Is(err, model.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		errResp = model.ErrorResponse{Code: model.ErrCodeStoryNotFound, Message: "Story not found"}
	case errors.Is(err, model.ErrJobNotFound):
		statusCode = http.StatusNotFound
		errResp = model.ErrorResponse{Code: model.ErrCodeJobNotFound, Message: "Job not found"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = model.ErrorResponse{Code: model.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func badRequest(c *gin.Context, message string) {
	errResp := model.ErrorResponse{Code: model.ErrCodeBadRequest, Message: message}
	c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
}
