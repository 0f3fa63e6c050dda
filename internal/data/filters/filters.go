// Package filters turns list query parameters into composable gorm scopes.
//
// Every parsed filter is a conjunction: each present parameter narrows the
// result, absent parameters impose nothing.
package filters

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalid wraps every parameter parsing failure.
var ErrInvalid = errors.New("invalid filter")

func invalid(param, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, param, fmt.Sprintf(format, args...))
}

// Scope is the shape gorm's Scopes accepts.
type Scope = func(*gorm.DB) *gorm.DB

// CriterionPair is one "<internal_name>:<value>" entry of the criteria parameter.
type CriterionPair struct {
	InternalName string
	Value        string
}

// ParseCriteria splits each entry on its first colon. The value may itself
// contain colons.
func ParseCriteria(raw []string) ([]CriterionPair, error) {
	out := make([]CriterionPair, 0, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, invalid("criteria", "%q must be internal_name:value", entry)
		}
		out = append(out, CriterionPair{InternalName: name, Value: value})
	}
	return out, nil
}

// ContainsPattern builds a LIKE pattern matching s anywhere, with LIKE
// metacharacters escaped by a backslash.
func ContainsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func iContains(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", ContainsPattern(value))
	}
}

// criteriaExists requires one matching association row per pair.
func criteriaExists(joinTable, ownerColumn, ownerRef string, pairs []CriterionPair) Scope {
	return func(db *gorm.DB) *gorm.DB {
		sql := "EXISTS (SELECT 1 FROM " + joinTable + " AS ac JOIN criteria AS c ON c.id = ac.criterion_id" +
			" WHERE ac." + ownerColumn + " = " + ownerRef + " AND c.internal_name = ? AND ac.value = ?)"
		for _, p := range pairs {
			db = db.Where(sql, p.InternalName, p.Value)
		}
		return db
	}
}

func idsIn(column string, ids []uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", ids)
	}
}

// splitValues returns the non-empty values of a repeated parameter, splitting
// comma separated entries.
func splitValues(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func first(q url.Values, key string) (string, bool) {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	v := vs[len(vs)-1]
	if v == "" {
		return "", false
	}
	return v, true
}

func parseIDs(q url.Values, key string) ([]uint, bool, error) {
	raw := splitValues(q, key)
	if len(raw) == 0 {
		return nil, false, nil
	}
	ids := make([]uint, 0, len(raw))
	for _, r := range raw {
		n, err := strconv.ParseUint(r, 10, 64)
		if err != nil {
			return nil, false, invalid(key, "%q is not an id", r)
		}
		ids = append(ids, uint(n))
	}
	return ids, true, nil
}

func parseFloat(q url.Values, key string) (*float64, error) {
	v, ok := first(q, key)
	if !ok {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, invalid(key, "%q is not a number", v)
	}
	return &f, nil
}

func parseBool(q url.Values, key string) (*bool, error) {
	v, ok := first(q, key)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return nil, invalid(key, "%q is not a boolean", v)
	}
	return &b, nil
}

func parseString(q url.Values, key string) *string {
	v, ok := first(q, key)
	if !ok {
		return nil
	}
	return &v
}

func parseCriteriaParam(q url.Values) ([]CriterionPair, error) {
	raw := make([]string, 0, len(q["criteria"]))
	for _, v := range q["criteria"] {
		if v != "" {
			raw = append(raw, v)
		}
	}
	return ParseCriteria(raw)
}
