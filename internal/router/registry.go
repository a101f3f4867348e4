package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on a group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry mounts every module twice: at the root and under /api.
type Registry struct {
	Engine      *gin.Engine
	Root        *gin.RouterGroup
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Root: engine.Group("/"), API: engine.Group("/api")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, g := range []*gin.RouterGroup{r.Root, r.API} {
		if len(r.middlewares) > 0 {
			g.Use(r.middlewares...)
		}
		for _, m := range r.modules {
			m.Register(g)
		}
	}
}
