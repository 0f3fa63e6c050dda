package catalog

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/yungbote/routesettings-backend/internal/data/db"
	"github.com/yungbote/routesettings-backend/internal/data/filters"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type CriterionRepo interface {
	List(dbc dbctx.Context, f filters.CriterionFilter) ([]*types.Criterion, error)
	GetByInternalNames(dbc dbctx.Context, names []string) ([]*types.Criterion, error)
	CountByIDs(dbc dbctx.Context, ids []uint) (int64, error)
	Upsert(dbc dbctx.Context, criteria []*types.Criterion) error
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type criterionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCriterionRepo(db *gorm.DB, baseLog *logger.Logger) CriterionRepo {
	return &criterionRepo{
		db:  db,
		log: baseLog.With("repo", "CriterionRepo"),
	}
}

func (r *criterionRepo) List(dbc dbctx.Context, f filters.CriterionFilter) ([]*types.Criterion, error) {
	out := []*types.Criterion{}
	if err := dbc.Conn(r.db).
		Model(&types.Criterion{}).
		Scopes(f.Scope).
		Order("criteria.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *criterionRepo) GetByInternalNames(dbc dbctx.Context, names []string) ([]*types.Criterion, error) {
	out := []*types.Criterion{}
	if len(names) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("internal_name IN ?", names).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *criterionRepo) CountByIDs(dbc dbctx.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.Criterion{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Upsert inserts criteria keyed by internal_name, updating name and
// value_type of existing rows. IDs are not reliably set on the inputs
// afterwards; reload with GetByInternalNames.
func (r *criterionRepo) Upsert(dbc dbctx.Context, criteria []*types.Criterion) error {
	if len(criteria) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, c := range criteria {
		if c.ValueType == "" {
			c.ValueType = types.ValueTypeString
		}
		c.UpdatedAt = now
	}
	err := dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "internal_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "value_type", "updated_at"}),
		}).
		Create(&criteria).Error
	return dbpkg.Classify(err)
}

// Delete fails with db.ErrReferenced while a place or route carries a value
// for the criterion.
func (r *criterionRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	res := dbc.Conn(r.db).Where("id = ?", id).Delete(&types.Criterion{})
	if res.Error != nil {
		return 0, dbpkg.Classify(res.Error)
	}
	return res.RowsAffected, nil
}
