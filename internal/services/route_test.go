package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	types "github.com/yungbote/routesettings-backend/internal/domain"
)

func TestRouteCreateGetRoundTrip(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := asUser(author)
	season := f.criterion(t, "season", types.ValueTypeString)
	a := f.place(t, "a", 1, 1)
	b := f.place(t, "b", 2, 2)

	created, err := f.routes.Create(ctx, RouteInput{
		Name:             strPtr("Coastal walk"),
		GuideDescription: strPtr("<p>Bring water</p>"),
		Criteria:         []RouteCriterionInput{{CriterionID: season.ID, Value: strPtr("summer")}},
		Places:           []uint{b.ID, a.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsDraft {
		t.Fatalf("new routes are drafts")
	}

	got, err := f.routes.Get(ctx, created.UUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Coastal walk" || got.GuideDescription == nil || *got.GuideDescription != "<p>Bring water</p>" {
		t.Fatalf("scalar fields did not round-trip: %+v", got)
	}
	if len(got.Criteria) != 1 || got.Criteria[0].CriterionID != season.ID || got.Criteria[0].Value != "summer" {
		t.Fatalf("criteria did not round-trip: %+v", got.Criteria)
	}
	if len(got.Places) != 2 || got.Places[0].PlaceID != b.ID || got.Places[1].PlaceID != a.ID {
		t.Fatalf("places did not round-trip in order: %+v", got.Places)
	}

	stranger := f.user(t, "stranger")
	if _, err := f.routes.Get(asUser(stranger), created.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner Get: expected ErrNotFound, got %v", err)
	}
	list, count, err := f.routes.List(asUser(stranger), filters.RouteFilter{}, filters.Page{Limit: 10})
	if err != nil || count != 0 || len(list) != 0 {
		t.Fatalf("stranger must see an empty list: %d %v", count, err)
	}
	if _, _, err := f.routes.List(context.Background(), filters.RouteFilter{}, filters.Page{Limit: 10}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous List: expected ErrUnauthenticated, got %v", err)
	}
}

func TestRouteCreateAcceptsEmptyValue(t *testing.T) {
	f := newFixture(t)
	ctx := asUser(f.user(t, "author"))
	season := f.criterion(t, "season", types.ValueTypeString)

	r, err := f.routes.Create(ctx, RouteInput{
		Name:     strPtr("r"),
		Criteria: []RouteCriterionInput{{CriterionID: season.ID, Value: strPtr("")}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(r.Criteria) != 1 || r.Criteria[0].Value != "" {
		t.Fatalf("unexpected criteria: %+v", r.Criteria)
	}
}

func TestRouteCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := asUser(f.user(t, "author"))
	season := f.criterion(t, "season", types.ValueTypeString)

	cases := map[string]RouteInput{
		"missing name":      {},
		"blank name":        {Name: strPtr("  ")},
		"unknown criterion": {Name: strPtr("r"), Criteria: []RouteCriterionInput{{CriterionID: 1 << 30, Value: strPtr("x")}}},
		"unknown place":     {Name: strPtr("r"), Places: []uint{1 << 30}},
		"missing value":     {Name: strPtr("r"), Criteria: []RouteCriterionInput{{CriterionID: season.ID}}},
		"missing criterion": {Name: strPtr("r"), Criteria: []RouteCriterionInput{{Value: strPtr("x")}}},
		"long value": {Name: strPtr("r"), Criteria: []RouteCriterionInput{
			{CriterionID: season.ID, Value: strPtr(strings.Repeat("v", 256))},
		}},
		"long name": {Name: strPtr(strings.Repeat("n", 256))},
		"duplicate criterion": {Name: strPtr("r"), Criteria: []RouteCriterionInput{
			{CriterionID: season.ID, Value: strPtr("a")},
			{CriterionID: season.ID, Value: strPtr("b")},
		}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := f.routes.Create(ctx, in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRouteUpdateSemantics(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := asUser(author)
	season := f.criterion(t, "season", types.ValueTypeString)
	km := f.criterion(t, "km", types.ValueTypeNumeric)
	a := f.place(t, "a", 1, 1)
	b := f.place(t, "b", 2, 2)

	r, err := f.routes.Create(ctx, RouteInput{
		Name:             strPtr("orig"),
		GuideDescription: strPtr("guide"),
		Criteria:         []RouteCriterionInput{{CriterionID: season.ID, Value: strPtr("summer")}},
		Places:           []uint{a.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// PATCH with only a name keeps associations.
	got, err := f.routes.Update(ctx, r.UUID, RouteInput{Name: strPtr("patched")}, FieldSet{Name: true})
	if err != nil {
		t.Fatalf("PATCH name: %v", err)
	}
	if got.Name != "patched" || len(got.Criteria) != 1 || len(got.Places) != 1 || got.GuideDescription == nil {
		t.Fatalf("PATCH must leave other fields alone: %+v", got)
	}

	// PATCH with an empty list clears just that association.
	got, err = f.routes.Update(ctx, r.UUID, RouteInput{Places: []uint{}}, FieldSet{Places: true})
	if err != nil {
		t.Fatalf("PATCH places: %v", err)
	}
	if len(got.Places) != 0 || len(got.Criteria) != 1 {
		t.Fatalf("PATCH places=[] must clear places only: %+v", got)
	}

	if _, err := f.routes.Update(ctx, r.UUID, RouteInput{}, FieldSet{Name: true}); !errors.Is(err, ErrValidation) {
		t.Fatalf("null name: expected ErrValidation, got %v", err)
	}

	// PUT replaces everything.
	got, err = f.routes.Update(ctx, r.UUID, RouteInput{
		Name:     strPtr("put"),
		Criteria: []RouteCriterionInput{{CriterionID: km.ID, Value: strPtr("7")}},
		Places:   []uint{b.ID},
	}, AllFields())
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	if got.Name != "put" || got.GuideDescription != nil {
		t.Fatalf("PUT must null omitted guide_description: %+v", got)
	}
	if len(got.Criteria) != 1 || got.Criteria[0].CriterionID != km.ID {
		t.Fatalf("PUT must replace criteria: %+v", got.Criteria)
	}
	if len(got.Places) != 1 || got.Places[0].PlaceID != b.ID {
		t.Fatalf("PUT must replace places: %+v", got.Places)
	}

	other := f.user(t, "other")
	if _, err := f.routes.Update(asUser(other), r.UUID, RouteInput{Name: strPtr("x")}, FieldSet{Name: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner update: expected ErrNotFound, got %v", err)
	}
	if _, err := f.routes.Update(ctx, uuid.New(), RouteInput{Name: strPtr("x")}, FieldSet{Name: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown uuid: expected ErrNotFound, got %v", err)
	}
}

func TestRouteDeleteAndDetails(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := asUser(author)
	a := f.place(t, "a", 1, 1)

	r, err := f.routes.Create(ctx, RouteInput{Name: strPtr("r"), Places: []uint{a.ID}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.routes.ImportDetails(ctx, r.UUID, []byte(`{"length_km": 3.2}`)); err != nil {
		t.Fatalf("ImportDetails: %v", err)
	}
	got, _ := f.routes.Get(ctx, r.UUID)
	if got.IsDraft {
		t.Fatalf("route with details must not be a draft")
	}
	if err := f.routes.ImportDetails(ctx, r.UUID, []byte(`[1,2]`)); !errors.Is(err, ErrValidation) {
		t.Fatalf("non-object details: expected ErrValidation, got %v", err)
	}
	if err := f.routes.ImportDetails(ctx, uuid.New(), []byte(`{}`)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown route details: expected ErrNotFound, got %v", err)
	}

	other := f.user(t, "other")
	if err := f.routes.Delete(asUser(other), r.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner delete: expected ErrNotFound, got %v", err)
	}
	if err := f.routes.Delete(ctx, r.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.routes.Get(ctx, r.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted route: expected ErrNotFound, got %v", err)
	}
	if err := f.routes.Delete(ctx, r.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	// The place is free again once the route is gone.
	if err := f.places.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("place delete after route delete: %v", err)
	}
}
