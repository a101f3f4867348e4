package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nareshkanna-nk/Young-wealth/internal/interface/middleware"
)

// DebugModule serves expvar and Prometheus metrics. Private network scrapers skip the limiter.
type DebugModule struct {
	limiter gin.HandlerFunc
}

func NewDebugModule(rdb *redis.Client) *DebugModule {
	return &DebugModule{limiter: middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.limiter, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", m.limiter, gin.WrapH(promhttp.Handler()))
}
