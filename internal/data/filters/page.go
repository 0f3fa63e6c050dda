package filters

import (
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset. Limits above MaxLimit are clamped.
func ParsePage(q url.Values) (Page, error) {
	p := Page{Limit: DefaultLimit}
	if v, ok := first(q, "limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, invalid("limit", "%q must be a positive integer", v)
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}
	if v, ok := first(q, "offset"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, invalid("offset", "%q must be a non-negative integer", v)
		}
		p.Offset = n
	}
	return p, nil
}

func (p Page) Scope(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return db.Limit(limit).Offset(p.Offset)
}
