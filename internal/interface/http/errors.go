package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/upload"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
)

// badRequest is a request that could not be decoded at all.
type badRequest struct {
	details map[string]string
}

func (e *badRequest) Error() string { return "invalid request body" }

// respondError maps an error to the JSON error envelope. Anything unrecognized is
// logged and reported as a generic 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var (
		verr *application.ValidationError
		uerr *upload.Error
		berr *badRequest
	)
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.As(err, &uerr):
		status := http.StatusBadRequest
		if uerr.TooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		response.Error(c, status, "File upload error", map[string]string{uerr.Field: uerr.Reason})
	case errors.As(err, &berr):
		response.Error(c, http.StatusBadRequest, "Invalid request body", berr.details)
	case errors.Is(err, application.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "Course not found", nil)
	case errors.Is(err, application.ErrVideoNotFound):
		response.Error(c, http.StatusNotFound, "Video not found", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, application.ErrNotAdmin):
		response.Error(c, http.StatusForbidden, "Admin access required", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "Email already exists", map[string]string{"email": "is already registered"})
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
