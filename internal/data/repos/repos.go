package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/repos/catalog"
	"github.com/yungbote/routesettings-backend/internal/data/repos/routes"
	"github.com/yungbote/routesettings-backend/internal/data/repos/user"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type PlaceRepo = catalog.PlaceRepo
type CriterionRepo = catalog.CriterionRepo

type RouteRepo = routes.RouteRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return catalog.NewPlaceRepo(db, baseLog)
}
func NewCriterionRepo(db *gorm.DB, baseLog *logger.Logger) CriterionRepo {
	return catalog.NewCriterionRepo(db, baseLog)
}

func NewRouteRepo(db *gorm.DB, baseLog *logger.Logger) RouteRepo {
	return routes.NewRouteRepo(db, baseLog)
}
