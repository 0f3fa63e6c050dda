package domain

import (
	"github.com/yungbote/routesettings-backend/internal/domain/catalog"
	"github.com/yungbote/routesettings-backend/internal/domain/routes"
	"github.com/yungbote/routesettings-backend/internal/domain/user"
)

type User = user.User

type Place = catalog.Place
type Criterion = catalog.Criterion
type PlaceCriterion = catalog.PlaceCriterion
type ValueType = catalog.ValueType

const (
	ValueTypeString  = catalog.ValueTypeString
	ValueTypeNumeric = catalog.ValueTypeNumeric
	ValueTypeBoolean = catalog.ValueTypeBoolean
)

var RoundCoordinate = catalog.RoundCoordinate

type Route = routes.Route
type RoutePlace = routes.RoutePlace
type RouteCriterion = routes.RouteCriterion

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&User{},
		&Criterion{},
		&Place{},
		&PlaceCriterion{},
		&Route{},
		&RoutePlace{},
		&RouteCriterion{},
	}
}
