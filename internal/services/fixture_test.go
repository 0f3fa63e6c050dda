package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/data/repos"
	"github.com/yungbote/routesettings-backend/internal/data/repos/testutil"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/ctxutil"
	"github.com/yungbote/routesettings-backend/internal/platform/gateway"
	"github.com/yungbote/routesettings-backend/internal/platform/offload"
)

type fakeGateway struct {
	mu    sync.Mutex
	err   error
	calls []gateway.Request
	uuids []uuid.UUID
}

func (g *fakeGateway) BuildRoute(_ context.Context, routeUUID uuid.UUID, req gateway.Request) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	g.uuids = append(g.uuids, routeUUID)
	return g.err
}

func (g *fakeGateway) Mode() string { return "fake" }

func (g *fakeGateway) Close() error { return nil }

type fixture struct {
	db *gorm.DB

	userRepo      repos.UserRepo
	placeRepo     repos.PlaceRepo
	criterionRepo repos.CriterionRepo
	routeRepo     repos.RouteRepo

	pool    *offload.Pool
	gateway *fakeGateway

	auth     AuthService
	places   PlaceService
	criteria CriterionService
	routes   RouteService
	builds   BuildService
	guides   GuideService
	seeds    SeedService
}

// newFixture works on an unwrapped database because services open their
// own transactions.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	f := &fixture{
		db:            db,
		userRepo:      repos.NewUserRepo(db, log),
		placeRepo:     repos.NewPlaceRepo(db, log),
		criterionRepo: repos.NewCriterionRepo(db, log),
		routeRepo:     repos.NewRouteRepo(db, log),
		pool:          offload.NewPool(log, 4),
		gateway:       &fakeGateway{},
	}
	f.auth = NewAuthService(db, log, f.userRepo, f.pool, 4)
	f.places = NewPlaceService(log, f.placeRepo)
	f.criteria = NewCriterionService(log, f.criterionRepo)
	routes, err := NewRouteService(db, log, f.routeRepo, f.placeRepo, f.criterionRepo, f.pool)
	if err != nil {
		t.Fatalf("NewRouteService: %v", err)
	}
	f.routes = routes
	f.builds = NewBuildService(log, f.routeRepo, f.gateway, f.pool)
	f.guides = NewGuideService(log, f.routeRepo)
	seeds, err := NewSeedService(db, log, f.criterionRepo, f.placeRepo)
	if err != nil {
		t.Fatalf("NewSeedService: %v", err)
	}
	f.seeds = seeds
	return f
}

// uniq keeps names distinct when tests share a postgres database.
func uniq(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

func (f *fixture) user(t *testing.T, name string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), f.db, uniq(name))
}

func (f *fixture) criterion(t *testing.T, name string, vt types.ValueType) *types.Criterion {
	t.Helper()
	return testutil.SeedCriterion(t, context.Background(), f.db, uniq(name), vt)
}

func (f *fixture) place(t *testing.T, name string, lat, lon float64) *types.Place {
	t.Helper()
	return testutil.SeedPlace(t, context.Background(), f.db, name, lat, lon, nil)
}

func asUser(u *types.User) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:     u.ID,
		Username:   u.Username,
		AuthMethod: "basic",
	})
}

func strPtr(s string) *string { return &s }
