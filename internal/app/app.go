// Package app wires config into the process-wide collaborators shared by
// every binary: logger, database, cache, metrics registry and the service.
package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rental-backoffice/internal/core/auth"
	"rental-backoffice/internal/core/cache"
	"rental-backoffice/internal/core/config"
	"rental-backoffice/internal/core/database"
	"rental-backoffice/internal/core/logger"
	"rental-backoffice/internal/repo"
	"rental-backoffice/internal/service"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	Store    *repo.Store
	Service  *service.Service
	JWT      *auth.JWTer
	Registry *prometheus.Registry

	closers []func()
}

// NewLogger builds the zap logger described by cfg.Log and routes the std
// log package through it.
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	var (
		l       *zap.Logger
		cleanup func()
	)
	if r := cfg.Log.Rotate; r.Enable {
		l, cleanup = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   r.Filename,
			MaxSizeMB:  r.MaxSizeMB,
			MaxBackups: r.MaxBackups,
			MaxAgeDays: r.MaxAgeDays,
			Compress:   r.Compress,
		})
	} else {
		l, cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	undo := logger.RedirectStdLog(l, zapcore.InfoLevel)
	return l, func() { undo(); cleanup() }
}

// New opens the database (migrating when configured), connects the optional
// analytics cache and builds the service. Close releases everything.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l, Registry: prometheus.NewRegistry()}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThresholdMs:    cfg.DB.SlowThresholdMs,
		Writer:             logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	a.Store = repo.NewStore(db)
	if cfg.DB.AutoMigrate {
		if err := a.Store.Migrate(); err != nil {
			a.Close()
			return nil, err
		}
		l.Info("automigrate done")
	}

	// redis 可选：连不上只告警，统计接口直接查库
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := c.Ping(pctx); err != nil {
			l.Warn("redis unreachable, analytics served uncached", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		a.closers = append(a.closers, func() { _ = c.Close() })
	}

	a.Service = service.New(a.Store, service.Deps{
		Cache:        c,
		AnalyticsTTL: time.Duration(cfg.Cache.AnalyticsTTLSec) * time.Second,
		Logger:       l,
		Registerer:   a.Registry,
	})
	a.JWT = &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
