package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"

	"rental-backoffice/internal/core/auth"
	"rental-backoffice/internal/transport/http/ez"
	resp "rental-backoffice/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, resp.Resp) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out resp.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"uid": ez.UserID(c)})) }

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", okHandler)

	cases := []struct {
		name string
		in   string
		keep bool
	}{
		{"echo", "abc-123", true},
		{"missing", "", false},
		{"too long", strings.Repeat("x", 65), false},
		{"control chars", "bad\x01id", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.in != "" {
				req.Header.Set(KeyRequestID, tc.in)
			}
			w, _ := serve(r, req)
			got := w.Header().Get(KeyRequestID)
			require.NotEmpty(t, got)
			if tc.keep {
				assert.Equal(t, tc.in, got)
			} else {
				assert.NotEqual(t, tc.in, got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(rate.Every(time.Hour), 2))
	r.GET("/", okHandler)

	for i := 0; i < 2; i++ {
		_, out := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, resp.CodeOK, out.Code)
	}
	_, out := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, resp.CodeTooManyRequests, out.Code)
}

func TestRateLimitPerIPIsolatesClients(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(rate.Every(time.Hour), 1, time.Minute))
	r.GET("/", okHandler)

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		_, out := serve(r, req)
		return out.Code
	}
	assert.Equal(t, resp.CodeOK, from("10.0.0.1"))
	assert.Equal(t, resp.CodeTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, resp.CodeOK, from("10.0.0.2"))
}

func TestAuthJWT(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "test", TTL: time.Hour}
	admin, err := j.Issue("u-admin", "ADMIN")
	require.NoError(t, err)
	user, err := j.Issue("u-user", "USER")
	require.NoError(t, err)
	other := &auth.JWTer{Secret: []byte("other"), Issuer: "test", TTL: time.Hour}
	forged, err := other.Issue("u-admin", "ADMIN")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", AuthJWT(j, "ADMIN"), okHandler)
	r.GET("/any", AuthJWT(j, ""), okHandler)

	cases := []struct {
		name, path, header string
		code               int
	}{
		{"admin ok", "/admin", "Bearer " + admin, resp.CodeOK},
		{"user on admin", "/admin", "Bearer " + user, resp.CodeUnauthorized},
		{"user on any", "/any", "Bearer " + user, resp.CodeOK},
		{"missing", "/any", "", resp.CodeUnauthorized},
		{"no bearer prefix", "/any", user, resp.CodeUnauthorized},
		{"wrong key", "/admin", "Bearer " + forged, resp.CodeUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w, out := serve(r, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.code, out.Code)
			if tc.code != resp.CodeOK {
				assert.Equal(t, "unauthorized", out.Kind)
			}
		})
	}
}

func TestRecoveryAnswersWithEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zaptest.NewLogger(t)))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w, out := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.CodeServerError, out.Code)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) { <-c.Request.Context().Done() })

	_, out := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, resp.CodeTimeout, out.Code)
}

func TestMetricsUsesUnmatchedLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(Metrics(reg))
	r.GET("/known", okHandler)

	serve(r, httptest.NewRequest(http.MethodGet, "/known", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/random/404", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	paths := map[string]bool{}
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "path" {
					paths[lp.GetValue()] = true
				}
			}
		}
	}
	assert.Equal(t, map[string]bool{"/known": true, "unmatched": true}, paths)
}
