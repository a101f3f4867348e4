package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nareshkanna-nk/Young-wealth/internal/container"
	handlers "github.com/nareshkanna-nk/Young-wealth/internal/interface/http"
	"github.com/nareshkanna-nk/Young-wealth/internal/interface/middleware"
	"github.com/nareshkanna-nk/Young-wealth/internal/router/modules"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
	"github.com/nareshkanna-nk/Young-wealth/pkg/validation"
)

// New builds the gin engine with global middleware and every module.
func New(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.DebugMetricsEnabled {
		r.Use(middleware.Metrics())
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}

	if cfg.UploadDriver == "local" {
		r.Static(cfg.UploadPublicPrefix, cfg.UploadDir)
	}
	r.GET("/healthz", handlers.Health)
	if cfg.DebugMetricsEnabled {
		modules.NewDebugModule(c.Redis).Register(&r.RouterGroup)
	}
	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, http.StatusNotFound, "Route not found", nil)
	})

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
