package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/ez"
)

type UserHandler struct{ svc *service.Service }

func NewUserHandler(svc *service.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[service.UserQuery, gin.H]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.UserQuery) (gin.H, error) {
			pg, err := h.svc.ListUsers(c.Request.Context(), ez.UserID(c), *in)
			if err != nil {
				return nil, err
			}
			return pageOut("users", pg), nil
		},
	})

	type roleIn struct {
		Role domain.Role `json:"role"`
	}
	ez.RegisterAction(e, ez.Action[roleIn, okOut]{
		Method: http.MethodPatch,
		Path:   "/users/:id/role",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *roleIn) (okOut, error) {
			return ok, h.svc.UpdateUserRole(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Role)
		},
	})

	withReason := map[string]func(c *gin.Context, id, reason string) error{
		"/users/:id/suspend": func(c *gin.Context, id, reason string) error {
			return h.svc.SuspendUser(c.Request.Context(), ez.UserID(c), id, reason)
		},
		"/users/:id/unsuspend": func(c *gin.Context, id, _ string) error {
			return h.svc.UnsuspendUser(c.Request.Context(), ez.UserID(c), id)
		},
		"/users/:id/ban": func(c *gin.Context, id, reason string) error {
			return h.svc.BanUser(c.Request.Context(), ez.UserID(c), id, reason)
		},
		"/users/:id/unban": func(c *gin.Context, id, _ string) error {
			return h.svc.UnbanUser(c.Request.Context(), ez.UserID(c), id)
		},
	}
	for path, fn := range withReason {
		ez.RegisterAction(e, ez.Action[reasonIn, okOut]{
			Method: http.MethodPost,
			Path:   path,
			Binder: ez.BindJSON,
			Auth:   true,
			Handler: func(c *gin.Context, in *reasonIn) (okOut, error) {
				return ok, fn(c, c.Param("id"), in.Reason)
			},
		})
	}

	type bulkIn struct {
		UserIDs []string `json:"userIds"`
		Reason  string   `json:"reason"`
	}
	ez.RegisterAction(e, ez.Action[bulkIn, okOut]{
		Method: http.MethodPost,
		Path:   "/bulk/users/suspend",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *bulkIn) (okOut, error) {
			return ok, h.svc.BulkSuspendUsers(c.Request.Context(), ez.UserID(c), in.UserIDs, in.Reason)
		},
	})
	ez.RegisterAction(e, ez.Action[bulkIn, okOut]{
		Method: http.MethodPost,
		Path:   "/bulk/users/ban",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *bulkIn) (okOut, error) {
			return ok, h.svc.BulkBanUsers(c.Request.Context(), ez.UserID(c), in.UserIDs, in.Reason)
		},
	})

	ez.RegisterAction(e, ez.Action[map[string]any, gin.H]{
		Method: http.MethodPatch,
		Path:   "/users/:id/profile",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *map[string]any) (gin.H, error) {
			u, err := h.svc.UpdateUserProfile(c.Request.Context(), ez.UserID(c), c.Param("id"), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"ok": true, "user": u}, nil
		},
	})
}
