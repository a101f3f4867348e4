package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nareshkanna-nk/Young-wealth/internal/interface/http"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	mw      []gin.HandlerFunc
}

func NewCourseModule(h *handlers.CourseHandler, mw ...gin.HandlerFunc) *CourseModule {
	return &CourseModule{Handler: h, mw: mw}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/courses", m.mw...)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/search", m.Handler.Search)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)

		g.POST("/:id/videos", m.Handler.AddVideo)
		g.PUT("/:id/videos/:videoId", m.Handler.UpdateVideo)
		g.DELETE("/:id/videos/:videoId", m.Handler.DeleteVideo)
	}
}
