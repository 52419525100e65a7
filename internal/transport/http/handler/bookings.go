package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/ez"
)

type BookingHandler struct{ svc *service.Service }

func NewBookingHandler(svc *service.Service) *BookingHandler { return &BookingHandler{svc: svc} }

func (h *BookingHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[service.BookingQuery, gin.H]{
		Method: http.MethodGet,
		Path:   "/bookings",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.BookingQuery) (gin.H, error) {
			pg, err := h.svc.ListBookings(c.Request.Context(), ez.UserID(c), *in)
			if err != nil {
				return nil, err
			}
			return pageOut("bookings", pg), nil
		},
	})
	ez.RegisterAction(e, ez.Action[reasonIn, okOut]{
		Method: http.MethodPost,
		Path:   "/bookings/:id/cancel",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *reasonIn) (okOut, error) {
			return ok, h.svc.CancelBooking(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Reason)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, okOut]{
		Method: http.MethodPost,
		Path:   "/bookings/:id/complete",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			return ok, h.svc.CompleteBooking(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})

	type refundIn struct {
		Amount *float64 `json:"amount"`
		Reason string   `json:"reason"`
	}
	ez.RegisterAction(e, ez.Action[refundIn, okOut]{
		Method: http.MethodPost,
		Path:   "/bookings/:id/refund",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *refundIn) (okOut, error) {
			if in.Amount == nil {
				return ok, domain.Invalid("amount is required")
			}
			return ok, h.svc.RefundBooking(c.Request.Context(), ez.UserID(c), c.Param("id"), *in.Amount, in.Reason)
		},
	})

	type disputeQ struct {
		Status domain.DisputeStatus `form:"status"`
	}
	ez.RegisterAction(e, ez.Action[disputeQ, gin.H]{
		Method: http.MethodGet,
		Path:   "/disputes",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *disputeQ) (gin.H, error) {
			ds, err := h.svc.ListDisputes(c.Request.Context(), ez.UserID(c), in.Status)
			if err != nil {
				return nil, err
			}
			return gin.H{"disputes": ds}, nil
		},
	})

	type resolveIn struct {
		Resolution          string  `json:"resolution"`
		DepositRefundAmount float64 `json:"depositRefundAmount"`
	}
	ez.RegisterAction(e, ez.Action[resolveIn, okOut]{
		Method: http.MethodPost,
		Path:   "/disputes/:id/resolve",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *resolveIn) (okOut, error) {
			return ok, h.svc.ResolveDispute(c.Request.Context(), ez.UserID(c), c.Param("id"), in.Resolution, in.DepositRefundAmount)
		},
	})
}
