package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"rental-backoffice/internal/core/auth"
	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/ez"
	mdw "rental-backoffice/internal/transport/http/middleware"
)

type userOut struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// AccountHandler serves the end-user surface: sign-in, own profile, own
// notifications and support requests.
type AccountHandler struct {
	svc   *service.Service
	db    *gorm.DB
	jwter *auth.JWTer
}

func NewAccountHandler(svc *service.Service, db *gorm.DB, jwter *auth.JWTer) *AccountHandler {
	return &AccountHandler{svc: svc, db: db, jwter: jwter}
}

// Priority 登录接口先挂
func (h *AccountHandler) Priority() int { return 10 }

func (h *AccountHandler) MountAPI(api *gin.RouterGroup) {
	// 公共分组（无需登录）
	public := ez.New(api)

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string  `json:"token"`
		User  userOut `json:"user"`
	}
	ez.RegisterAction(public, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			tok, err := h.jwter.Issue(u.ID, string(u.Role))
			if err != nil {
				return loginOut{}, domain.Upstream("issue token", err)
			}
			return loginOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	// 匿名可提交，按 IP 限速
	support := api.Group("/support", mdw.RateLimitPerIP(rate.Every(10*time.Second), 3, 10*time.Minute))
	ez.RegisterAction(ez.New(support), ez.Action[service.SupportRequest, okOut]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.SupportRequest) (okOut, error) {
			return ok, h.svc.SubmitSupportRequest(c.Request.Context(), *in)
		},
	})

	// 鉴权分组（需要登录）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(h.jwter, ""))
	me := ez.New(authed)

	ez.RegisterAction(me, ez.Action[struct{}, userOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (userOut, error) {
			u, err := h.svc.Me(c.Request.Context(), ez.UserID(c))
			if err != nil {
				return userOut{}, err
			}
			return toUserOut(u), nil
		},
	})

	ez.Crud(ez.CrudConfig[domain.Notification]{
		DB:          h.db,
		Group:       authed,
		Path:        "/notifications",
		New:         func() *domain.Notification { return &domain.Notification{} },
		AllowList:   true,
		AllowGet:    true,
		AllowDelete: true,
		Hooks: ez.CrudHooks[domain.Notification]{
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if c.Query("unread") == "true" {
					q = q.Where("is_read = ?", false)
				}
				return q
			},
		},
	})
	ez.RegisterAction(me, ez.Action[struct{}, okOut]{
		Method: http.MethodPost,
		Path:   "/notifications/:id/read",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			return ok, h.svc.MarkNotificationRead(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})
}
