package app

import (
	"context"
	"fmt"

	"github.com/yungbote/routesettings-backend/internal/observability"
	"github.com/yungbote/routesettings-backend/internal/platform/gateway"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type Clients struct {
	Gateway gateway.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...", "gateway_mode", cfg.Gateway.Mode)
	gw, err := gateway.New(ctx, log, cfg.Gateway, metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init route gateway: %w", err)
	}
	return Clients{Gateway: gw}, nil
}

func (c Clients) Close() error {
	if c.Gateway == nil {
		return nil
	}
	return c.Gateway.Close()
}
