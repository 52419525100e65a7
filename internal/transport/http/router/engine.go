package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rental-backoffice/internal/core/auth"
	"rental-backoffice/internal/core/server"
	"rental-backoffice/internal/repo"
	"rental-backoffice/internal/service"
	"rental-backoffice/internal/transport/http/handler"
	mdw "rental-backoffice/internal/transport/http/middleware"
)

// Deps is what both engines need. Registry receives the HTTP metrics and
// backs /metrics; a fresh one is created when nil.
type Deps struct {
	Logger   *zap.Logger
	JWT      *auth.JWTer
	Registry *prometheus.Registry
	Timeout  time.Duration
}

// Backoffice returns every route module of the marketplace back office.
func Backoffice(svc *service.Service, store *repo.Store, jwter *auth.JWTer) *Modules {
	return new(Modules).Register(
		handler.NewAccountHandler(svc, store.DB(), jwter),
		handler.NewUserHandler(svc),
		handler.NewKYCHandler(svc),
		handler.NewListingHandler(svc),
		handler.NewBookingHandler(svc),
		handler.NewInsightHandler(svc),
	)
}

func newEngine(d *Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Timeout <= 0 {
		d.Timeout = 10 * time.Second
	}

	r := server.NewRouter(d.Logger)
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(d.Logger),
		mdw.RateLimit(rate.Limit(200), 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(d.Timeout),
		mdw.Metrics(d.Registry),
		mdw.AccessLog(d.Logger),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry})))
	return r
}
