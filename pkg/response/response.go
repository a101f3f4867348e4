package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope for every failed request.
type ErrorBody struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Success writes {"success": true, key: data}.
func Success(ctx *gin.Context, status int, key string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, gin.H{"success": true, key: data})
}

// Fields writes {"success": true} merged with extra top-level fields.
func Fields(ctx *gin.Context, status int, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	ctx.JSON(status, body)
}

// Message writes {"success": true, "message": msg}.
func Message(ctx *gin.Context, status int, msg string) {
	Success(ctx, status, "message", msg)
}

func newError(status int, message string, details map[string]string) (int, ErrorBody) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return status, ErrorBody{Success: false, Error: message, Errors: details}
}

// Error writes the error envelope.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	ctx.JSON(newError(status, message, details))
}

// Abort writes the error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, details map[string]string) {
	ctx.AbortWithStatusJSON(newError(status, message, details))
}
