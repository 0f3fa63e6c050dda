package catalog

import (
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/routesettings-backend/internal/data/db"
	"github.com/yungbote/routesettings-backend/internal/data/filters"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type PlaceRepo interface {
	List(dbc dbctx.Context, f filters.PlaceFilter, page filters.Page) ([]*types.Place, int64, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Place, error)
	CountByIDs(dbc dbctx.Context, ids []uint) (int64, error)
	Create(dbc dbctx.Context, places []*types.Place) ([]*types.Place, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type placeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return &placeRepo{
		db:  db,
		log: baseLog.With("repo", "PlaceRepo"),
	}
}

func (r *placeRepo) List(dbc dbctx.Context, f filters.PlaceFilter, page filters.Page) ([]*types.Place, int64, error) {
	base := dbc.Conn(r.db).Model(&types.Place{}).Scopes(f.Scope)

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	out := []*types.Place{}
	if count == 0 {
		return out, 0, nil
	}
	if err := base.Session(&gorm.Session{}).
		Scopes(page.Scope).
		Order("places.id ASC").
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

// GetByID loads the place with its criterion values. Returns nil when absent.
func (r *placeRepo) GetByID(dbc dbctx.Context, id uint) (*types.Place, error) {
	var out []*types.Place
	if err := dbc.Conn(r.db).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("place_criteria.id ASC")
		}).
		Preload("Criteria.Criterion").
		Where("places.id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *placeRepo) CountByIDs(dbc dbctx.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.Place{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts places together with their criterion rows. Criterion rows
// must reference existing criteria by CriterionID.
func (r *placeRepo) Create(dbc dbctx.Context, places []*types.Place) ([]*types.Place, error) {
	if len(places) == 0 {
		return []*types.Place{}, nil
	}
	err := dbc.Conn(r.db).Transaction(func(txx *gorm.DB) error {
		for _, p := range places {
			if err := txx.Omit("Criteria").Create(p).Error; err != nil {
				return dbpkg.Classify(err)
			}
			for i := range p.Criteria {
				p.Criteria[i].PlaceID = p.ID
			}
			if len(p.Criteria) > 0 {
				if err := txx.Omit("Criterion").Create(&p.Criteria).Error; err != nil {
					return dbpkg.Classify(err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Delete removes a place and its criterion rows. Fails with
// db.ErrReferenced while any route still lists the place.
func (r *placeRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	res := dbc.Conn(r.db).Where("id = ?", id).Delete(&types.Place{})
	if res.Error != nil {
		return 0, dbpkg.Classify(res.Error)
	}
	return res.RowsAffected, nil
}
