package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and mounts them under the shared
// /api group. Modules register in the order they were added, after any
// group-wide middleware.
type Registry struct {
	engine  *gin.Engine
	api     *gin.RouterGroup
	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{engine: engine, api: engine.Group("/api")}
}

// Use appends middleware that applies to every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.shared = append(r.shared, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll wires the shared middleware and then every module.
func (r *Registry) RegisterAll() {
	if len(r.shared) > 0 {
		r.api.Use(r.shared...)
	}
	for _, m := range r.modules {
		m.Register(r.api)
	}
}
