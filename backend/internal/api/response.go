package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "eventgraph/backend/pkg/errors"
)

// Response is the success envelope
type Response struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Data: data, Message: message})
}

// respondError maps err onto a status code. Server-side failures are logged
// with their full cause; clients only see the public message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := apperrors.StatusCode(err)
	if status >= 500 {
		log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Message:   apperrors.PublicMessage(err),
		RequestID: c.GetString(requestIDKey),
	})
}
