package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nareshkanna-nk/Young-wealth/internal/interface/http"
)

// AuthModule exposes POST /login behind a per-IP limiter.
type AuthModule struct {
	Handler *handlers.AuthHandler
	limiter gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, limiter gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, limiter: limiter}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", m.limiter, m.Handler.Login)
}
