package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/routesettings-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	return SeedUserWithPassword(tb, ctx, tx, username, "pw", true)
}

func SeedUserWithPassword(tb testing.TB, ctx context.Context, tx *gorm.DB, username, password string, active bool) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
		IsActive: active,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCriterion(tb testing.TB, ctx context.Context, tx *gorm.DB, internalName string, vt types.ValueType) *types.Criterion {
	tb.Helper()
	c := &types.Criterion{
		Name:         internalName + " name",
		InternalName: internalName,
		ValueType:    vt,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed criterion: %v", err)
	}
	return c
}

// SeedPlace creates a place and attaches the given criterion values.
func SeedPlace(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, lat, lon float64, values map[*types.Criterion]string) *types.Place {
	tb.Helper()
	p := &types.Place{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed place: %v", err)
	}
	for c, v := range values {
		pc := &types.PlaceCriterion{PlaceID: p.ID, CriterionID: c.ID, Value: v}
		if err := tx.WithContext(ctx).Omit("Criterion").Create(pc).Error; err != nil {
			tb.Fatalf("seed place criterion: %v", err)
		}
	}
	return p
}

// SeedRoute creates a route owned by author with places attached in order.
func SeedRoute(tb testing.TB, ctx context.Context, tx *gorm.DB, author *types.User, name string, places ...*types.Place) *types.Route {
	tb.Helper()
	r := &types.Route{Name: name}
	if author != nil {
		r.AuthorID = &author.ID
	}
	if err := tx.WithContext(ctx).Omit("Author", "Places", "Criteria").Create(r).Error; err != nil {
		tb.Fatalf("seed route: %v", err)
	}
	for _, p := range places {
		rp := &types.RoutePlace{RouteID: r.ID, PlaceID: p.ID}
		if err := tx.WithContext(ctx).Omit("Place").Create(rp).Error; err != nil {
			tb.Fatalf("seed route place: %v", err)
		}
	}
	return r
}

func SeedRouteCriterion(tb testing.TB, ctx context.Context, tx *gorm.DB, route *types.Route, c *types.Criterion, value string) {
	tb.Helper()
	rc := &types.RouteCriterion{RouteID: route.ID, CriterionID: c.ID, Value: value}
	if err := tx.WithContext(ctx).Omit("Criterion").Create(rc).Error; err != nil {
		tb.Fatalf("seed route criterion: %v", err)
	}
}

func SetRouteDetails(tb testing.TB, ctx context.Context, tx *gorm.DB, route *types.Route, details string) {
	tb.Helper()
	if err := tx.WithContext(ctx).
		Model(&types.Route{}).
		Where("id = ?", route.ID).
		Update("details", datatypes.JSON([]byte(details))).Error; err != nil {
		tb.Fatalf("set route details: %v", err)
	}
}

func PtrString(v string) *string { return &v }
