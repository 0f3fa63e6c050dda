package filters

import (
	"net/url"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteFilter struct {
	UUID     *uuid.UUID
	Name     *string
	IsDraft  *bool
	Criteria []CriterionPair
	IDs      []uint
	HasIDs   bool
}

func ParseRouteFilter(q url.Values) (RouteFilter, error) {
	var (
		f   RouteFilter
		err error
	)
	if v, ok := first(q, "uuid"); ok {
		id, perr := uuid.Parse(v)
		if perr != nil {
			return f, invalid("uuid", "%q is not a uuid", v)
		}
		f.UUID = &id
	}
	f.Name = parseString(q, "name")
	if f.IsDraft, err = parseBool(q, "is_draft"); err != nil {
		return f, err
	}
	if f.Criteria, err = parseCriteriaParam(q); err != nil {
		return f, err
	}
	if f.IDs, f.HasIDs, err = parseIDs(q, "id__in"); err != nil {
		return f, err
	}
	return f, nil
}

func (f RouteFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.UUID != nil {
		db = db.Where("routes.uuid = ?", *f.UUID)
	}
	if f.Name != nil {
		db = iContains("routes.name", *f.Name)(db)
	}
	if f.IsDraft != nil {
		if *f.IsDraft {
			db = db.Where("routes.details IS NULL")
		} else {
			db = db.Where("routes.details IS NOT NULL")
		}
	}
	if len(f.Criteria) > 0 {
		db = criteriaExists("route_criteria", "route_id", "routes.id", f.Criteria)(db)
	}
	if f.HasIDs {
		db = idsIn("routes.id", f.IDs)(db)
	}
	return db
}
