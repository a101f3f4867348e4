package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/upload"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
)

func (h *CourseHandler) AddVideo(c *gin.Context) {
	in, file, err := h.videoInput(c)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	video, err := h.Svc.AddVideo(c.Request.Context(), c.Param("id"), in, file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "video", video)
}

func (h *CourseHandler) UpdateVideo(c *gin.Context) {
	in, file, err := h.videoInput(c)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	video, err := h.Svc.UpdateVideo(c.Request.Context(), c.Param("id"), c.Param("videoId"), in, file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "video", video)
}

func (h *CourseHandler) DeleteVideo(c *gin.Context) {
	if err := h.Svc.DeleteVideo(c.Request.Context(), c.Param("id"), c.Param("videoId")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Video deleted successfully")
}

func (h *CourseHandler) videoInput(c *gin.Context) (application.Fields, application.Attachment, error) {
	in, err := readFields(c, h.Uploads)
	if err != nil {
		return nil, nil, err
	}
	file, err := readFile(c, h.Uploads, upload.VideoRule)
	if err != nil {
		return nil, nil, err
	}
	return in, file, nil
}
