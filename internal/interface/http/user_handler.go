package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
)

// UserHandler manages learner and admin accounts. Passwords never leave the service.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "users", users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "user", u)
}

func (h *UserHandler) Create(c *gin.Context) {
	in, err := readFields(c, Uploads{})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "user", u)
}

func (h *UserHandler) Update(c *gin.Context) {
	in, err := readFields(c, Uploads{})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "user", u)
}

// Delete deactivates the account; the record is kept.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted successfully")
}
