package filters

import (
	"net/url"

	"gorm.io/gorm"
)

type PlaceFilter struct {
	Name         *string
	LongitudeGTE *float64
	LongitudeLTE *float64
	LatitudeGTE  *float64
	LatitudeLTE  *float64
	Criteria     []CriterionPair
	IDs          []uint
	HasIDs       bool
}

func ParsePlaceFilter(q url.Values) (PlaceFilter, error) {
	var (
		f   PlaceFilter
		err error
	)
	f.Name = parseString(q, "name")
	if f.LongitudeGTE, err = parseFloat(q, "longitude__gte"); err != nil {
		return f, err
	}
	if f.LongitudeLTE, err = parseFloat(q, "longitude__lte"); err != nil {
		return f, err
	}
	if f.LatitudeGTE, err = parseFloat(q, "latitude__gte"); err != nil {
		return f, err
	}
	if f.LatitudeLTE, err = parseFloat(q, "latitude__lte"); err != nil {
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

func (f PlaceFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Name != nil {
		db = db.Where("places.name = ?", *f.Name)
	}
	if f.LongitudeGTE != nil {
		db = db.Where("places.longitude >= ?", *f.LongitudeGTE)
	}
	if f.LongitudeLTE != nil {
		db = db.Where("places.longitude <= ?", *f.LongitudeLTE)
	}
	if f.LatitudeGTE != nil {
		db = db.Where("places.latitude >= ?", *f.LatitudeGTE)
	}
	if f.LatitudeLTE != nil {
		db = db.Where("places.latitude <= ?", *f.LatitudeLTE)
	}
	if len(f.Criteria) > 0 {
		db = criteriaExists("place_criteria", "place_id", "places.id", f.Criteria)(db)
	}
	if f.HasIDs {
		db = idsIn("places.id", f.IDs)(db)
	}
	return db
}
