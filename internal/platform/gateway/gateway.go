// Package gateway submits route build requests to the external route
// builder. Submission is fire-and-forget: a nil error means the builder
// accepted the request, not that the route was built.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/platform/envutil"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

const (
	ModeHTTP  = "http"
	ModeRedis = "redis"
	ModeNoop  = "noop"
)

// ErrUnavailable wraps every failed submission.
var ErrUnavailable = errors.New("route gateway unavailable")

// Coordinate is one entry of points_coordinates.
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Request is the build body: points_coordinates plus one key per route
// criterion internal name.
type Request map[string]any

const PointsKey = "points_coordinates"

type Client interface {
	BuildRoute(ctx context.Context, routeUUID uuid.UUID, req Request) error
	Mode() string
	Close() error
}

// Observer receives one call per submission.
type Observer interface {
	ObserveGateway(transport, outcome string, dur time.Duration)
}

type Config struct {
	Mode string

	BaseURL    string
	Timeout    time.Duration
	SigningKey string
	Issuer     string
	TokenTTL   time.Duration

	BreakerFailures    uint32
	BreakerOpenTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Stream        string
	StreamMaxLen  int64
}

func ConfigFromEnv() Config {
	return Config{
		Mode:               strings.ToLower(envutil.String("GATEWAY_MODE", ModeHTTP)),
		BaseURL:            strings.TrimRight(envutil.String("GATEWAY_BASE_URL", ""), "/"),
		Timeout:            envutil.Seconds("GATEWAY_TIMEOUT_SECONDS", 10*time.Second),
		SigningKey:         envutil.String("GATEWAY_SIGNING_KEY", ""),
		Issuer:             envutil.String("GATEWAY_TOKEN_ISSUER", "routesettings"),
		TokenTTL:           envutil.Seconds("GATEWAY_TOKEN_TTL_SECONDS", time.Minute),
		BreakerFailures:    uint32(envutil.Int("GATEWAY_BREAKER_FAILURES", 5)),
		BreakerOpenTimeout: envutil.Seconds("GATEWAY_BREAKER_OPEN_SECONDS", 30*time.Second),
		RedisAddr:          envutil.String("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      envutil.String("REDIS_PASSWORD", ""),
		RedisDB:            envutil.Int("REDIS_DB", 0),
		Stream:             envutil.String("GATEWAY_STREAM", "route-builds"),
		StreamMaxLen:       int64(envutil.Int("GATEWAY_STREAM_MAXLEN", 10000)),
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeHTTP:
		if c.BaseURL == "" {
			return fmt.Errorf("GATEWAY_BASE_URL is required when GATEWAY_MODE=%s", ModeHTTP)
		}
	case ModeRedis:
		if c.RedisAddr == "" || c.Stream == "" {
			return fmt.Errorf("REDIS_ADDR and GATEWAY_STREAM are required when GATEWAY_MODE=%s", ModeRedis)
		}
	case ModeNoop:
	default:
		return fmt.Errorf("unknown GATEWAY_MODE %q", c.Mode)
	}
	return nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config, obs Observer) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeRedis:
		return newRedisClient(ctx, log, cfg, obs)
	case ModeNoop:
		return newNoopClient(log, obs), nil
	default:
		return newHTTPClient(log, cfg, obs), nil
	}
}

func observe(obs Observer, transport string, start time.Time, err error) {
	if obs == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	obs.ObserveGateway(transport, outcome, time.Since(start))
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
