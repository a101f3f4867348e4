package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nareshkanna-nk/Young-wealth/internal/container"
	handlers "github.com/nareshkanna-nk/Young-wealth/internal/interface/http"
	"github.com/nareshkanna-nk/Young-wealth/internal/interface/middleware"
	"github.com/nareshkanna-nk/Young-wealth/internal/router/modules"
)

// adminRequestsPerMinute caps each client IP, and each signed-in admin when the guard is on.
const adminRequestsPerMinute = 300

// InitModules builds handlers from the container and registers their modules.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	uploads := handlers.Uploads{Storage: c.Uploads, MaxBytes: cfg.UploadMaxBytes}

	admin := []gin.HandlerFunc{
		middleware.RateLimit(c.Redis, adminRequestsPerMinute, time.Minute, middleware.KeyByIP(), nil),
	}
	if cfg.AdminBasicAuth {
		admin = append(admin,
			middleware.AdminBasicAuth(c.AuthSvc),
			middleware.RateLimit(c.Redis, adminRequestsPerMinute, time.Minute, middleware.KeyByAdmin(), nil),
		)
	}

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(c.AuthSvc, c.Logger),
		middleware.RateLimit(c.Redis, cfg.LoginRateLimit, time.Minute, middleware.KeyByIP(), nil),
	))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(c.CourseSvc, uploads, c.Logger), admin...))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.UserSvc, c.Logger), admin...))
	r.Add(modules.NewStatsModule(handlers.NewStatsHandler(c.DashboardSvc, c.Logger), admin...))
}
