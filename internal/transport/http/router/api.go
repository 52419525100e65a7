package router

import (
	"github.com/gin-gonic/gin"
)

// NewAPIEngine serves the end-user surface under /api/v1. Modules apply their
// own auth per route group.
func NewAPIEngine(d Deps, mods *Modules) *gin.Engine {
	r := newEngine(&d)
	mods.mountAPI(r.Group("/api/v1"))
	return r
}
