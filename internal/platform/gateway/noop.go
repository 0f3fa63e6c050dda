package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type noopClient struct {
	log *logger.Logger
	obs Observer
}

func newNoopClient(log *logger.Logger, obs Observer) *noopClient {
	return &noopClient{log: log.With("client", "RouteGateway", "transport", ModeNoop), obs: obs}
}

func (c *noopClient) Mode() string { return ModeNoop }

func (c *noopClient) BuildRoute(ctx context.Context, routeUUID uuid.UUID, body Request) error {
	start := time.Now()
	points := 0
	if pts, ok := body[PointsKey].([]Coordinate); ok {
		points = len(pts)
	}
	c.log.Info("route build acknowledged without dispatch", "route_uuid", routeUUID, "points", points, "keys", len(body))
	observe(c.obs, ModeNoop, start, nil)
	return nil
}

func (c *noopClient) Close() error { return nil }
