package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/ez"
)

type KYCHandler struct{ svc *service.Service }

func NewKYCHandler(svc *service.Service) *KYCHandler { return &KYCHandler{svc: svc} }

func (h *KYCHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[service.KYCQuery, gin.H]{
		Method: http.MethodGet,
		Path:   "/kyc",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.KYCQuery) (gin.H, error) {
			pg, err := h.svc.ListKYC(c.Request.Context(), ez.UserID(c), *in)
			if err != nil {
				return nil, err
			}
			return pageOut("kyc", pg), nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, okOut]{
		Method: http.MethodPost,
		Path:   "/kyc/:id/approve",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			return ok, h.svc.ApproveKYC(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})
	ez.RegisterAction(e, ez.Action[reasonIn, okOut]{
		Method: http.MethodPost,
		Path:   "/kyc/:id/reject",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *reasonIn) (okOut, error) {
			return ok, h.svc.RejectKYC(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Reason)
		},
	})
	// reset is keyed by the owner, not the KYC row
	ez.RegisterAction(e, ez.Action[struct{}, okOut]{
		Method: http.MethodPost,
		Path:   "/users/:id/kyc/reset",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			return ok, h.svc.ResetKYC(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})
}
