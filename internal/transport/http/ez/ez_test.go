package ez

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/testutil"
	resp "rental-backoffice/internal/transport/http/response"
)

func TestToSnake(t *testing.T) {
	for in, want := range map[string]string{
		"ID":        "id",
		"UserID":    "user_id",
		"CreatedAt": "created_at",
		"isRead":    "is_read",
	} {
		assert.Equal(t, want, toSnake(in), in)
	}
}

func TestWriteStringField(t *testing.T) {
	var n domain.Notification
	require.True(t, writeStringField(&n, []string{"OwnerID", "UserID"}, "u1"))
	assert.Equal(t, "u1", n.UserID)

	assert.False(t, writeStringField(n, []string{"UserID"}, "u1"), "non-pointer")
	assert.False(t, writeStringField(&n, []string{"IsRead"}, "x"), "non-string field")
}

func TestRegisterAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set(KeyUserID, uid)
		}
	})

	type in struct {
		Name string `json:"name"`
	}
	RegisterAction(New(g), Action[in, gin.H]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *in) (gin.H, error) {
			if in.Name == "missing" {
				return nil, domain.NotFound("no such thing")
			}
			return gin.H{"name": in.Name, "uid": UserID(c)}, nil
		},
	})

	call := func(user, body string) resp.Resp {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var out resp.Resp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	assert.Equal(t, resp.CodeUnauthorized, call("", `{"name":"a"}`).Code)
	assert.Equal(t, resp.CodeOK, call("u1", `{"name":"a"}`).Code)
	assert.Equal(t, resp.CodeOK, call("u1", ``).Code, "empty body binds to zero value")
	assert.Equal(t, resp.CodeBadRequest, call("u1", `{"name":`).Code)

	out := call("u1", `{"name":"missing"}`)
	assert.Equal(t, resp.CodeNotFound, out.Code)
	assert.Equal(t, "not_found", out.Kind)
}

func TestCrudGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	owner := testutil.NewFixtures(t, db).User(domain.User{})
	n := domain.Notification{ID: "n1", UserID: owner.ID, Type: domain.NotifKYCStatus, Title: "KYC Approved"}
	require.NoError(t, db.Create(&n).Error)

	r := gin.New()
	g := r.Group("/", func(c *gin.Context) { c.Set(KeyUserID, c.GetHeader("X-Test-User")) })
	Crud(CrudConfig[domain.Notification]{
		DB:       db,
		Group:    g,
		Path:     "/notifications",
		New:      func() *domain.Notification { return &domain.Notification{} },
		AllowGet: true,
	})
	get := func(user, id string) resp.Resp {
		req := httptest.NewRequest(http.MethodGet, "/notifications/"+id, nil)
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var out resp.Resp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	assert.Equal(t, resp.CodeOK, get(owner.ID, "n1").Code)
	assert.Equal(t, resp.CodeNotFound, get("someone-else", "n1").Code)
	assert.Equal(t, resp.CodeNotFound, get(owner.ID, "missing").Code)

	// store failures are not reported as a missing row
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	out := get(owner.ID, "n1")
	assert.Equal(t, resp.CodeServerError, out.Code)
	assert.Equal(t, "upstream", out.Kind)
}
