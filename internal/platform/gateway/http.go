package gateway

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yungbote/routesettings-backend/internal/platform/ctxutil"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type httpClient struct {
	log     *logger.Logger
	rc      *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	signer  *tokenSigner
	obs     Observer
}

func newHTTPClient(log *logger.Logger, cfg Config, obs Observer) *httpClient {
	clientLog := log.With("client", "RouteGateway", "transport", ModeHTTP)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        "route-gateway",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			clientLog.Warn("gateway breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	var signer *tokenSigner
	if cfg.SigningKey != "" {
		signer = newTokenSigner(cfg.SigningKey, cfg.Issuer, cfg.TokenTTL)
	}

	return &httpClient{
		log:     clientLog,
		rc:      rc,
		breaker: breaker,
		signer:  signer,
		obs:     obs,
	}
}

func (c *httpClient) Mode() string { return ModeHTTP }

func (c *httpClient) BuildRoute(ctx context.Context, routeUUID uuid.UUID, body Request) (err error) {
	start := time.Now()
	defer func() { observe(c.obs, ModeHTTP, start, err) }()

	_, err = c.breaker.Execute(func() (*resty.Response, error) {
		req := c.rc.R().
			SetContext(ctx).
			SetBody(body)
		if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
			req.SetHeader("X-Request-ID", td.RequestID)
		}
		if c.signer != nil {
			token, serr := c.signer.Sign(routeUUID)
			if serr != nil {
				return nil, serr
			}
			req.SetAuthToken(token)
		}
		resp, rerr := req.Post("/routes/" + routeUUID.String() + "/build")
		if rerr != nil {
			return resp, rerr
		}
		if resp.IsError() {
			return resp, fmt.Errorf("gateway responded %d", resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		c.log.Warn("route build submission failed", "route_uuid", routeUUID, "error", err)
		return unavailable(err)
	}
	c.log.Info("route build submitted", "route_uuid", routeUUID)
	return nil
}

func (c *httpClient) Close() error { return nil }
