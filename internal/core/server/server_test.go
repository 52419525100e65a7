package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestAddrAndHumanURL(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8081", Addr("0.0.0.0", 8081))
	assert.Equal(t, "http://127.0.0.1:8081", HumanURL("0.0.0.0", 8081))
	assert.Equal(t, "http://127.0.0.1:80", HumanURL("", 80))
	assert.Equal(t, "http://admin.local:9000", HumanURL("admin.local", 9000))
}

func TestNewRouterAnswersPreflight(t *testing.T) {
	r := NewRouter(zaptest.NewLogger(t))
	r.GET("/x", func(*gin.Context) {})

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestNewRouterSetsOriginOnSimpleRequest(t *testing.T) {
	r := NewRouter(zaptest.NewLogger(t))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://admin.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildServer(t *testing.T) {
	srv := BuildServer(":0", http.NotFoundHandler(), time.Second, 2*time.Second, 3*time.Second)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
}
