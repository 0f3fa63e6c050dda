package filters

import (
	"net/url"

	"gorm.io/gorm"
)

type CriterionFilter struct {
	Name         *string
	InternalName *string
	ValueType    *string
}

func ParseCriterionFilter(q url.Values) (CriterionFilter, error) {
	return CriterionFilter{
		Name:         parseString(q, "name"),
		InternalName: parseString(q, "internal_name"),
		ValueType:    parseString(q, "value_type"),
	}, nil
}

func (f CriterionFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Name != nil {
		db = iContains("criteria.name", *f.Name)(db)
	}
	if f.InternalName != nil {
		db = iContains("criteria.internal_name", *f.InternalName)(db)
	}
	if f.ValueType != nil {
		db = db.Where("criteria.value_type = ?", *f.ValueType)
	}
	return db
}
