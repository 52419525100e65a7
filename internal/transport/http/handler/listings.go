package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/ez"
)

type ListingHandler struct{ svc *service.Service }

func NewListingHandler(svc *service.Service) *ListingHandler { return &ListingHandler{svc: svc} }

func (h *ListingHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[service.ListingQuery, gin.H]{
		Method: http.MethodGet,
		Path:   "/listings",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ListingQuery) (gin.H, error) {
			pg, err := h.svc.ListListings(c.Request.Context(), ez.UserID(c), *in)
			if err != nil {
				return nil, err
			}
			return pageOut("listings", pg), nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/listings/pending",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			ls, err := h.svc.ListPendingListings(c.Request.Context(), ez.UserID(c))
			if err != nil {
				return nil, err
			}
			return gin.H{"listings": ls}, nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/listings/:id/toggle-pause",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			paused, err := h.svc.ToggleListingPause(c.Request.Context(), ez.UserID(c), c.Param("id"))
			if err != nil {
				return nil, err
			}
			return gin.H{"ok": true, "isPaused": paused}, nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, okOut]{
		Method: http.MethodDelete,
		Path:   "/listings/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			return ok, h.svc.DeleteListing(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})
	ez.RegisterAction(e, ez.Action[map[string]any, gin.H]{
		Method: http.MethodPatch,
		Path:   "/listings/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *map[string]any) (gin.H, error) {
			l, err := h.svc.UpdateListing(c.Request.Context(), ez.UserID(c), c.Param("id"), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"ok": true, "listing": l}, nil
		},
	})
	ez.RegisterAction(e, ez.Action[reasonIn, okOut]{
		Method: http.MethodPost,
		Path:   "/listings/:id/approve",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *reasonIn) (okOut, error) {
			return ok, h.svc.ApproveListing(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Reason)
		},
	})
	ez.RegisterAction(e, ez.Action[reasonIn, okOut]{
		Method: http.MethodPost,
		Path:   "/listings/:id/reject",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *reasonIn) (okOut, error) {
			return ok, h.svc.RejectListing(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Reason)
		},
	})
}
