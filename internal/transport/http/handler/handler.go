// Package handler binds HTTP routes to service operations.
package handler

import (
	"github.com/gin-gonic/gin"

	"rental-backoffice/pkg/utils"
)

type reasonIn struct {
	Reason string `json:"reason"`
}

type okOut struct {
	OK bool `json:"ok"`
}

var ok = okOut{OK: true}

// pageOut renders a page under key, e.g. {"users": [...], "total": 45, ...}.
func pageOut[T any](key string, pg utils.Page[T]) gin.H {
	return gin.H{
		key:          pg.Items,
		"total":      pg.Total,
		"page":       pg.Page,
		"pageSize":   pg.PageSize,
		"totalPages": pg.TotalPages(),
	}
}
