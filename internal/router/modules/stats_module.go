package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nareshkanna-nk/Young-wealth/internal/interface/http"
)

type StatsModule struct {
	Handler *handlers.StatsHandler
	mw      []gin.HandlerFunc
}

func NewStatsModule(h *handlers.StatsHandler, mw ...gin.HandlerFunc) *StatsModule {
	return &StatsModule{Handler: h, mw: mw}
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	chain := append(append([]gin.HandlerFunc{}, m.mw...), m.Handler.Stats)
	rg.GET("/stats", chain...)
}
