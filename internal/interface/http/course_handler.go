package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/upload"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
)

type CourseHandler struct {
	Svc     *application.CourseService
	Uploads Uploads
	Logger  *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, uploads Uploads, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Uploads: uploads, Logger: logger}
}

// List returns every course, inactive ones included.
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "courses", courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "course", course)
}

// Search runs a full-text query; size defaults to 10.
func (h *CourseHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	size, _ := strconv.Atoi(c.Query("size"))
	courses, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "courses", courses)
}

func (h *CourseHandler) Create(c *gin.Context) {
	in, thumb, err := h.courseInput(c)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), in, thumb)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "course", course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	in, thumb, err := h.courseInput(c)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, thumb)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "course", course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Course deleted successfully")
}

func (h *CourseHandler) courseInput(c *gin.Context) (application.Fields, application.Attachment, error) {
	in, err := readFields(c, h.Uploads)
	if err != nil {
		return nil, nil, err
	}
	thumb, err := readFile(c, h.Uploads, upload.ThumbnailRule)
	if err != nil {
		return nil, nil, err
	}
	return in, thumb, nil
}
