package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/repos"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	Place     repos.PlaceRepo
	Criterion repos.CriterionRepo
	Route     repos.RouteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		Place:     repos.NewPlaceRepo(db, log),
		Criterion: repos.NewCriterionRepo(db, log),
		Route:     repos.NewRouteRepo(db, log),
	}
}
