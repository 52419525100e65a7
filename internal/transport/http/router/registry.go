package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule 模块可选择实现其中一个或两个接口
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Modules collects the route modules of one process. Each engine owns its
// own set; nothing is registered at package init.
type Modules struct {
	api   []APIModule
	admin []AdminModule
}

// Register 根据类型断言分发到 API/Admin 列表
func (m *Modules) Register(mods ...any) *Modules {
	for _, mod := range mods {
		if a, ok := mod.(APIModule); ok {
			m.api = append(m.api, a)
		}
		if a, ok := mod.(AdminModule); ok {
			m.admin = append(m.admin, a)
		}
	}
	return m
}

func (m *Modules) mountAPI(g *gin.RouterGroup) {
	mods := append([]APIModule(nil), m.api...)
	sort.SliceStable(mods, func(i, j int) bool { return priorityOf(mods[i]) < priorityOf(mods[j]) })
	for _, mod := range mods {
		mod.MountAPI(g)
	}
}

func (m *Modules) mountAdmin(g *gin.RouterGroup) {
	mods := append([]AdminModule(nil), m.admin...)
	sort.SliceStable(mods, func(i, j int) bool { return priorityOf(mods[i]) < priorityOf(mods[j]) })
	for _, mod := range mods {
		mod.MountAdmin(g)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
