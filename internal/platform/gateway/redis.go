package gateway

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

// redisClient appends build requests to a stream the builder consumes.
type redisClient struct {
	log    *logger.Logger
	rdb    *redis.Client
	stream string
	maxLen int64
	obs    Observer
}

func newRedisClient(ctx context.Context, log *logger.Logger, cfg Config, obs Observer) (*redisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisClient{
		log:    log.With("client", "RouteGateway", "transport", ModeRedis, "stream", cfg.Stream),
		rdb:    rdb,
		stream: cfg.Stream,
		maxLen: cfg.StreamMaxLen,
		obs:    obs,
	}, nil
}

func (c *redisClient) Mode() string { return ModeRedis }

func (c *redisClient) BuildRoute(ctx context.Context, routeUUID uuid.UUID, body Request) (err error) {
	start := time.Now()
	defer func() { observe(c.obs, ModeRedis, start, err) }()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode build request: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: c.stream,
		Values: map[string]interface{}{
			"route_uuid": routeUUID.String(),
			"payload":    string(payload),
			"queued_at":  time.Now().UTC().Format(time.RFC3339Nano),
		},
	}
	if c.maxLen > 0 {
		args.MaxLen = c.maxLen
		args.Approx = true
	}
	id, err := c.rdb.XAdd(ctx, args).Result()
	if err != nil {
		c.log.Warn("route build enqueue failed", "route_uuid", routeUUID, "error", err)
		return unavailable(err)
	}
	c.log.Info("route build enqueued", "route_uuid", routeUUID, "message_id", id)
	return nil
}

func (c *redisClient) Close() error { return c.rdb.Close() }
