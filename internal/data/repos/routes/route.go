package routes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/routesettings-backend/internal/data/db"
	"github.com/yungbote/routesettings-backend/internal/data/filters"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

// draftProjection computes is_draft; it is never stored.
const draftProjection = "routes.*, (routes.details IS NULL) AS is_draft"

type RouteRepo interface {
	List(dbc dbctx.Context, authorID uuid.UUID, f filters.RouteFilter, page filters.Page) ([]*types.Route, int64, error)
	GetByUUID(dbc dbctx.Context, authorID uuid.UUID, routeUUID uuid.UUID) (*types.Route, error)
	GetSummaryByUUID(dbc dbctx.Context, authorID uuid.UUID, routeUUID uuid.UUID) (*types.Route, error)
	ListPlaces(dbc dbctx.Context, routeID uint) ([]*types.Place, error)
	ListCriteria(dbc dbctx.Context, routeID uint) ([]types.RouteCriterion, error)
	Create(dbc dbctx.Context, route *types.Route) error
	UpdateFields(dbc dbctx.Context, routeID uint, updates map[string]interface{}) error
	ReplaceCriteria(dbc dbctx.Context, routeID uint, criteria []types.RouteCriterion) error
	ReplacePlaces(dbc dbctx.Context, routeID uint, placeIDs []uint) error
	DeleteByUUID(dbc dbctx.Context, authorID uuid.UUID, routeUUID uuid.UUID) (int64, error)
	SetDetails(dbc dbctx.Context, routeUUID uuid.UUID, details datatypes.JSON) (int64, error)
}

type routeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRouteRepo(db *gorm.DB, baseLog *logger.Logger) RouteRepo {
	return &routeRepo{
		db:  db,
		log: baseLog.With("repo", "RouteRepo"),
	}
}

func (r *routeRepo) List(dbc dbctx.Context, authorID uuid.UUID, f filters.RouteFilter, page filters.Page) ([]*types.Route, int64, error) {
	base := dbc.Conn(r.db).
		Model(&types.Route{}).
		Where("routes.author_id = ?", authorID).
		Scopes(f.Scope)

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	out := []*types.Route{}
	if count == 0 {
		return out, 0, nil
	}
	if err := base.Session(&gorm.Session{}).
		Select(draftProjection).
		Scopes(page.Scope).
		Order("routes.id ASC").
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r *routeRepo) detailQuery(dbc dbctx.Context) *gorm.DB {
	return dbc.Conn(r.db).
		Select(draftProjection).
		Preload("Places", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_places.id ASC")
		}).
		Preload("Places.Place").
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_criteria.id ASC")
		}).
		Preload("Criteria.Criterion")
}

// GetByUUID returns the author's route with places and criteria loaded, or
// nil when the route is absent or owned by someone else.
func (r *routeRepo) GetByUUID(dbc dbctx.Context, authorID uuid.UUID, routeUUID uuid.UUID) (*types.Route, error) {
	var out []*types.Route
	if err := r.detailQuery(dbc).
		Where("routes.uuid = ? AND routes.author_id = ?", routeUUID, authorID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// GetSummaryByUUID loads the route row without associations.
func (r *routeRepo) GetSummaryByUUID(dbc dbctx.Context, authorID uuid.UUID, routeUUID uuid.UUID) (*types.Route, error) {
	var out []*types.Route
	if err := dbc.Conn(r.db).
		Select(draftProjection).
		Where("routes.uuid = ? AND routes.author_id = ?", routeUUID, authorID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// ListPlaces returns the route's places in attach order.
func (r *routeRepo) ListPlaces(dbc dbctx.Context, routeID uint) ([]*types.Place, error) {
	out := []*types.Place{}
	if err := dbc.Conn(r.db).
		Joins("JOIN route_places ON route_places.place_id = places.id").
		Where("route_places.route_id = ?", routeID).
		Order("route_places.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *routeRepo) ListCriteria(dbc dbctx.Context, routeID uint) ([]types.RouteCriterion, error) {
	out := []types.RouteCriterion{}
	if err := dbc.Conn(r.db).
		Preload("Criterion").
		Where("route_id = ?", routeID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the route row only; associations go through the Replace
// methods.
func (r *routeRepo) Create(dbc dbctx.Context, route *types.Route) error {
	err := dbc.Conn(r.db).
		Omit("Author", "Places", "Criteria").
		Create(route).Error
	return dbpkg.Classify(err)
}

func (r *routeRepo) UpdateFields(dbc dbctx.Context, routeID uint, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	err := dbc.Conn(r.db).
		Model(&types.Route{}).
		Where("id = ?", routeID).
		Updates(updates).Error
	return dbpkg.Classify(err)
}

func (r *routeRepo) ReplaceCriteria(dbc dbctx.Context, routeID uint, criteria []types.RouteCriterion) error {
	return dbc.Conn(r.db).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("route_id = ?", routeID).Delete(&types.RouteCriterion{}).Error; err != nil {
			return err
		}
		if len(criteria) == 0 {
			return nil
		}
		rows := make([]types.RouteCriterion, 0, len(criteria))
		for _, c := range criteria {
			rows = append(rows, types.RouteCriterion{
				RouteID:     routeID,
				CriterionID: c.CriterionID,
				Value:       c.Value,
			})
		}
		return dbpkg.Classify(txx.Omit("Criterion").Create(&rows).Error)
	})
}

// ReplacePlaces stores placeIDs in the given order; duplicates keep the
// first position.
func (r *routeRepo) ReplacePlaces(dbc dbctx.Context, routeID uint, placeIDs []uint) error {
	return dbc.Conn(r.db).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("route_id = ?", routeID).Delete(&types.RoutePlace{}).Error; err != nil {
			return err
		}
		seen := make(map[uint]struct{}, len(placeIDs))
		rows := make([]types.RoutePlace, 0, len(placeIDs))
		for _, id := range placeIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			rows = append(rows, types.RoutePlace{RouteID: routeID, PlaceID: id})
		}
		if len(rows) == 0 {
			return nil
		}
		return dbpkg.Classify(txx.Omit("Place").Create(&rows).Error)
	})
}

func (r *routeRepo) DeleteByUUID(dbc dbctx.Context, authorID uuid.UUID, routeUUID uuid.UUID) (int64, error) {
	res := dbc.Conn(r.db).
		Where("uuid = ? AND author_id = ?", routeUUID, authorID).
		Delete(&types.Route{})
	if res.Error != nil {
		return 0, dbpkg.Classify(res.Error)
	}
	return res.RowsAffected, nil
}

// SetDetails stores builder output; nil details turn the route back into a
// draft.
func (r *routeRepo) SetDetails(dbc dbctx.Context, routeUUID uuid.UUID, details datatypes.JSON) (int64, error) {
	var value interface{}
	if len(details) > 0 {
		value = details
	}
	res := dbc.Conn(r.db).
		Model(&types.Route{}).
		Where("uuid = ?", routeUUID).
		Updates(map[string]interface{}{
			"details":    value,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
