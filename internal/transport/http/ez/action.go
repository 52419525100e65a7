package ez

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/domain"
	resp "rental-backoffice/internal/transport/http/response"
)

// Context keys written by the auth middleware.
const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定，空 body 视为零值
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET | POST | PUT | PATCH | DELETE
	Path    string // 例："/users/:id/ban"
	Binder  Binder
	Auth    bool // 是否要求登录（检查 userId）
	Handler func(c *gin.Context, in *I) (O, error)
}

// UserID returns the caller id the auth middleware stored, or "".
func UserID(c *gin.Context) string { return c.GetString(KeyUserID) }

// Fail writes err as an envelope. Upstream causes are attached to the gin
// context so the access log can record them.
func Fail(c *gin.Context, err error) {
	if domain.KindOf(err) == domain.KindUpstream {
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, resp.FromError(err))
}

func bind[I any](c *gin.Context, b Binder, in *I) error {
	var err error
	switch b {
	case BindJSON:
		err = c.ShouldBindJSON(in)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case BindQuery:
		err = c.ShouldBindQuery(in)
	}
	if err != nil {
		return domain.Invalidf("invalid request: %v", err)
	}
	return nil
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth && UserID(c) == "" {
			Fail(c, domain.Unauthorized("unauthorized"))
			return
		}
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			Fail(c, err)
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
