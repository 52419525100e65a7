package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/ez"
)

// InsightHandler serves the read-only dashboard and the audit trail.
type InsightHandler struct{ svc *service.Service }

func NewInsightHandler(svc *service.Service) *InsightHandler { return &InsightHandler{svc: svc} }

func (h *InsightHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, *service.Analytics]{
		Method: http.MethodGet,
		Path:   "/analytics",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.Analytics, error) {
			return h.svc.GetAnalytics(c.Request.Context(), ez.UserID(c))
		},
	})
	ez.RegisterAction(e, ez.Action[domain.AuditFilter, gin.H]{
		Method: http.MethodGet,
		Path:   "/audit-log",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.AuditFilter) (gin.H, error) {
			rows, err := h.svc.ListAuditLog(c.Request.Context(), ez.UserID(c), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"actions": rows}, nil
		},
	})
}
