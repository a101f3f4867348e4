package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nareshkanna-nk/Young-wealth/internal/interface/http"
)

type UserModule struct {
	Handler *handlers.UserHandler
	mw      []gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, mw ...gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, mw: mw}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users", m.mw...)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
