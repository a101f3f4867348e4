package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
)

type StatsHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewStatsHandler(svc *application.DashboardService, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{Svc: svc, Logger: logger}
}

func (h *StatsHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "stats", st)
}

func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "status", "ok")
}
