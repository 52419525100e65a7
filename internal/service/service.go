package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"rental-backoffice/internal/core/cache"
	"rental-backoffice/internal/repo"
)

// Deps are the optional collaborators of a Service. Zero values are valid:
// a nil Cache disables the analytics cache, a nil Registerer leaves the
// action counter unregistered.
type Deps struct {
	Cache        *cache.Cache
	AnalyticsTTL time.Duration
	Logger       *zap.Logger
	Registerer   prometheus.Registerer
}

// Service carries every back-office operation. Privileged methods take the
// caller's user id and check it through RequireAdmin before touching data.
type Service struct {
	store        *repo.Store
	cache        *cache.Cache
	analyticsTTL time.Duration
	log          *zap.Logger
	validate     *validator.Validate
	actions      *prometheus.CounterVec
}

func New(store *repo.Store, d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.AnalyticsTTL <= 0 {
		d.AnalyticsTTL = 30 * time.Second
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_actions_total",
		Help: "Committed admin mutations by action",
	}, []string{"action"})
	if d.Registerer != nil {
		d.Registerer.MustRegister(actions)
	}
	return &Service{
		store:        store,
		cache:        d.Cache,
		analyticsTTL: d.AnalyticsTTL,
		log:          d.Logger.Named("service"),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		actions:      actions,
	}
}
