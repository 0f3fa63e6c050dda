package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/routesettings-backend/internal/data/repos"
	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/dbctx"
	"github.com/yungbote/routesettings-backend/internal/platform/gateway"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/platform/offload"
)

type BuildService interface {
	// Build submits the route to the gateway. It does not wait for the
	// route to be built and does not change the stored route.
	Build(ctx context.Context, routeUUID uuid.UUID) error
	Request(ctx context.Context, routeUUID uuid.UUID) (gateway.Request, error)
}

type buildService struct {
	log       *logger.Logger
	routeRepo repos.RouteRepo
	gateway   gateway.Client
	pool      *offload.Pool
}

func NewBuildService(log *logger.Logger, routeRepo repos.RouteRepo, gw gateway.Client, pool *offload.Pool) BuildService {
	return &buildService{
		log:       log.With("service", "BuildService"),
		routeRepo: routeRepo,
		gateway:   gw,
		pool:      pool,
	}
}

func (s *buildService) Build(ctx context.Context, routeUUID uuid.UUID) error {
	req, err := s.Request(ctx, routeUUID)
	if err != nil {
		return err
	}
	if err := s.gateway.BuildRoute(ctx, routeUUID, req); err != nil {
		return err
	}
	s.log.Info("route build requested", "route_uuid", routeUUID, "transport", s.gateway.Mode())
	return nil
}

// Request assembles the gateway body. Places and criteria load concurrently
// on the offload pool.
func (s *buildService) Request(ctx context.Context, routeUUID uuid.UUID) (gateway.Request, error) {
	author, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	route, err := offload.Value(ctx, s.pool, func(ctx context.Context) (*types.Route, error) {
		return s.routeRepo.GetSummaryByUUID(dbctx.Context{Ctx: ctx}, author, routeUUID)
	})
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, fmt.Errorf("route %s: %w", routeUUID, ErrNotFound)
	}

	var (
		points   []gateway.Coordinate
		criteria map[string]any
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		places, err := offload.Value(gctx, s.pool, func(ctx context.Context) ([]*types.Place, error) {
			return s.routeRepo.ListPlaces(dbctx.Context{Ctx: ctx}, route.ID)
		})
		if err != nil {
			return fmt.Errorf("load route places: %w", err)
		}
		points = PointsCoordinates(places)
		return nil
	})
	g.Go(func() error {
		rows, err := offload.Value(gctx, s.pool, func(ctx context.Context) ([]types.RouteCriterion, error) {
			return s.routeRepo.ListCriteria(dbctx.Context{Ctx: ctx}, route.ID)
		})
		if err != nil {
			return fmt.Errorf("load route criteria: %w", err)
		}
		criteria = CriteriaValues(rows)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return MergeRequest(points, criteria), nil
}

// MergeRequest writes points first, so a criterion with the same internal
// name replaces them.
func MergeRequest(points []gateway.Coordinate, criteria map[string]any) gateway.Request {
	req := make(gateway.Request, len(criteria)+1)
	req[gateway.PointsKey] = points
	for k, v := range criteria {
		req[k] = v
	}
	return req
}

// PointsCoordinates keeps the order of places.
func PointsCoordinates(places []*types.Place) []gateway.Coordinate {
	out := make([]gateway.Coordinate, 0, len(places))
	for _, p := range places {
		out = append(out, gateway.Coordinate{Longitude: p.Longitude, Latitude: p.Latitude})
	}
	return out
}

// CriteriaValues maps internal names to values typed by the criterion's
// value_type. Values that do not parse stay strings.
func CriteriaValues(rows []types.RouteCriterion) map[string]any {
	out := make(map[string]any, len(rows))
	for _, rc := range rows {
		out[rc.Criterion.InternalName] = CoerceValue(rc.Criterion.ValueType, rc.Value)
	}
	return out
}

func CoerceValue(vt types.ValueType, raw string) any {
	switch vt {
	case types.ValueTypeNumeric:
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	case types.ValueTypeBoolean:
		if b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw))); err == nil {
			return b
		}
	}
	return raw
}
