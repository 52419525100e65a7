package ez

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-backoffice/internal/domain"
	resp "rental-backoffice/internal/transport/http/response"
	"rental-backoffice/pkg/utils"
)

var errOwnerField = errors.New("ez: model has no owner field")

// Hook
type CrudHooks[T any] struct {
	ScopeList func(c *gin.Context, q *gorm.DB) *gorm.DB // 自定义筛选
	AfterGet  func(c *gin.Context, m *T)
}

// CrudConfig mounts owner-scoped read and delete routes for T. Rows are always
// filtered by the caller's id, so one user never sees another's rows.
type CrudConfig[T any] struct {
	DB    *gorm.DB
	Group *gin.RouterGroup // 已鉴权分组（能拿 userId）
	Path  string
	New   func() *T

	Hooks CrudHooks[T]

	AllowList   bool
	AllowGet    bool
	AllowDelete bool

	IDField    string // 默认 "ID"
	OwnerField string // 默认优先 "OwnerID"，其次 "UserID"/"UID"

	// 列表排序（列名按模型字段自动转 snake_case），为空则按 created_at DESC, id ASC
	OrderBy string
}

func (c *CrudConfig[T]) idFieldCandidates() []string {
	if c.IDField != "" {
		return []string{c.IDField, "ID", "Id"}
	}
	return []string{"ID", "Id"}
}

func (c *CrudConfig[T]) ownerFieldCandidates() []string {
	if c.OwnerField != "" {
		return []string{c.OwnerField, "OwnerID", "UserID", "UID"}
	}
	return []string{"OwnerID", "UserID", "UID"}
}

// writeStringField sets the first exported string field named in candidates.
func writeStringField(obj any, candidates []string, val string) bool {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return false
	}
	v = v.Elem()
	for _, cand := range candidates {
		f, ok := v.Type().FieldByName(cand)
		if !ok || f.PkgPath != "" {
			continue
		}
		fv := v.FieldByIndex(f.Index)
		if fv.Kind() == reflect.String && fv.CanSet() {
			fv.SetString(val)
			return true
		}
	}
	return false
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(s[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// 注册（无需模型实现任何接口）
func Crud[T any](cfg CrudConfig[T]) {
	if !cfg.AllowGet && !cfg.AllowList && !cfg.AllowDelete {
		cfg.AllowList, cfg.AllowGet, cfg.AllowDelete = true, true, true
	}
	idFieldNames := cfg.idFieldCandidates()
	ownerFieldNames := cfg.ownerFieldCandidates()

	// owner 过滤条件；模型缺字段时返回 nil
	scoped := func(c *gin.Context, id string) (*T, bool) {
		uid := UserID(c)
		if uid == "" {
			Fail(c, domain.Unauthorized("unauthorized"))
			return nil, false
		}
		filter := cfg.New()
		if !writeStringField(filter, ownerFieldNames, uid) {
			Fail(c, domain.Upstream("crud", errOwnerField))
			return nil, false
		}
		if id != "" {
			_ = writeStringField(filter, idFieldNames, id)
		}
		return filter, true
	}

	// List（我的）
	if cfg.AllowList {
		cfg.Group.GET(cfg.Path, func(c *gin.Context) {
			filter, ok := scoped(c, "")
			if !ok {
				return
			}
			var p utils.Pagination
			if err := c.ShouldBindQuery(&p); err != nil {
				Fail(c, domain.Invalidf("invalid paging: %v", err))
				return
			}
			p = p.Normalize()

			// 用结构体 Where 自动映射列名，避免手写 user_id
			base := func() *gorm.DB {
				q := cfg.DB.WithContext(c.Request.Context()).Model(cfg.New()).Where(filter)
				if cfg.Hooks.ScopeList != nil {
					q = cfg.Hooks.ScopeList(c, q)
				}
				return q
			}
			var total int64
			if err := base().Count(&total).Error; err != nil {
				Fail(c, domain.Upstream("count", err))
				return
			}

			q := base()
			if cfg.OrderBy != "" {
				q = q.Order(cfg.OrderBy)
			} else {
				q = q.Order("created_at DESC").
					Order(clause.OrderByColumn{Column: clause.Column{Name: toSnake(idFieldNames[0])}})
			}
			var items []T
			if err := q.Limit(p.Limit()).Offset(p.Offset()).Find(&items).Error; err != nil {
				Fail(c, domain.Upstream("list", err))
				return
			}
			if cfg.Hooks.AfterGet != nil {
				for i := range items {
					cfg.Hooks.AfterGet(c, &items[i])
				}
			}
			c.JSON(http.StatusOK, resp.OK(utils.NewPage(items, total, p)))
		})
	}

	// Get
	if cfg.AllowGet {
		cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
			filter, ok := scoped(c, c.Param("id"))
			if !ok {
				return
			}
			m := cfg.New()
			if err := cfg.DB.WithContext(c.Request.Context()).Where(filter).First(m).Error; err != nil {
				// 不区分“不存在”和“不属于你”
				if errors.Is(err, gorm.ErrRecordNotFound) {
					Fail(c, domain.NotFound("not found"))
				} else {
					Fail(c, domain.Upstream("get", err))
				}
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			c.JSON(http.StatusOK, resp.OK(m))
		})
	}

	// Delete
	if cfg.AllowDelete {
		cfg.Group.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
			id := c.Param("id")
			filter, ok := scoped(c, id)
			if !ok {
				return
			}
			res := cfg.DB.WithContext(c.Request.Context()).Where(filter).Delete(cfg.New())
			if res.Error != nil {
				Fail(c, domain.Upstream("delete", res.Error))
				return
			}
			if res.RowsAffected == 0 {
				Fail(c, domain.NotFound("not found"))
				return
			}
			c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
		})
	}
}
