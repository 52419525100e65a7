package router

import (
	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/domain"
	mdw "rental-backoffice/internal/transport/http/middleware"
)

// NewAdminEngine serves the back-office surface under /admin/v1.
func NewAdminEngine(d Deps, mods *Modules) *gin.Engine {
	r := newEngine(&d)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, string(domain.RoleAdmin)))
	mods.mountAdmin(admin)

	return r
}
