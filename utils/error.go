package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body every failed request gets.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler converts a panic anywhere in the handler chain into a 500
// with a stable body, so one bad turn never kills the chat session.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("panic recovered in request",
					zap.String("path", c.FullPath()),
					zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "internal server error",
					Details: "Something went wrong on our side. Please send your message again.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError writes a structured error reply and logs it once.
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn("request failed",
		zap.Int("status", status),
		zap.String("message", message),
		zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
