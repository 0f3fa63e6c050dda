package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/db"
	"github.com/yungbote/routesettings-backend/internal/http"
	"github.com/yungbote/routesettings-backend/internal/observability"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics

	dbService     *db.Service
	traceShutdown func(context.Context) error
}

// New wires the full server. Core leaves out the router and the tracer.
func New(ctx context.Context) (*App, error) {
	a, err := Core(ctx)
	if err != nil {
		return nil, err
	}
	a.traceShutdown = observability.InitOTel(ctx, a.Log, observability.OtelConfig{
		ServiceName: a.Cfg.ServiceName,
		Environment: a.Cfg.LogMode,
	})
	router, err := wireRouter(a.DB, a.Log, a.Cfg, a.Services, a.Metrics)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Router = router
	return a, nil
}

// Core opens the database and wires repos, clients and services. The admin
// CLI uses it directly.
func Core(ctx context.Context) (*App, error) {
	LoadEnvFile()
	log, err := logger.NewWithOptions(LogOptions())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbService, err := db.New(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(log)
	}

	clients, err := wireClients(ctx, log, cfg, metrics)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, clients)
	if err != nil {
		_ = clients.Close()
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:       log,
		DB:        theDB,
		Cfg:       cfg,
		Repos:     reposet,
		Services:  serviceset,
		Clients:   clients,
		Metrics:   metrics,
		dbService: dbService,
	}, nil
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := &http.Server{Engine: a.Router}
	addr := ":" + a.Cfg.Port
	a.Log.Info("HTTP server listening", "addr", addr, "dev", a.Cfg.Dev())
	return srv.Run(ctx, addr)
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.traceShutdown != nil {
		errs = append(errs, a.traceShutdown(context.Background()))
	}
	errs = append(errs, a.Clients.Close())
	if a.dbService != nil {
		errs = append(errs, a.dbService.Close())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
