package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/platform/offload"
	"github.com/yungbote/routesettings-backend/internal/services"
)

type Services struct {
	Pool *offload.Pool

	Auth      services.AuthService
	Place     services.PlaceService
	Criterion services.CriterionService
	Route     services.RouteService
	Build     services.BuildService
	Guide     services.GuideService
	Seed      services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...", "offload_workers", cfg.OffloadWorkers)
	pool := offload.NewPool(log, cfg.OffloadWorkers)

	seed, err := services.NewSeedService(db, log, reposet.Criterion, reposet.Place)
	if err != nil {
		return Services{}, fmt.Errorf("init seed service: %w", err)
	}
	route, err := services.NewRouteService(db, log, reposet.Route, reposet.Place, reposet.Criterion, pool)
	if err != nil {
		return Services{}, fmt.Errorf("init route service: %w", err)
	}
	return Services{
		Pool:      pool,
		Auth:      services.NewAuthService(db, log, reposet.User, pool, cfg.BcryptCost),
		Place:     services.NewPlaceService(log, reposet.Place),
		Criterion: services.NewCriterionService(log, reposet.Criterion),
		Route:     route,
		Build:     services.NewBuildService(log, reposet.Route, clients.Gateway, pool),
		Guide:     services.NewGuideService(log, reposet.Route),
		Seed:      seed,
	}, nil
}
