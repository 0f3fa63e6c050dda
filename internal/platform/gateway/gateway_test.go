package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveGateway(transport, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, transport+":"+outcome)
}

func sampleRequest() Request {
	return Request{
		PointsKey: []Coordinate{{Longitude: 37.61, Latitude: 55.75}, {Longitude: 30.31, Latitude: 59.93}},
		"season":  "summer",
		"km":      5.5,
	}
}

func TestHTTPClientSubmitsSignedRequest(t *testing.T) {
	routeUUID := uuid.New()
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client, err := New(context.Background(), logger.Nop(), Config{
		Mode:       ModeHTTP,
		BaseURL:    srv.URL,
		SigningKey: "secret",
		Issuer:     "tests",
	}, obs)
	require.NoError(t, err)
	require.Equal(t, ModeHTTP, client.Mode())

	require.NoError(t, client.BuildRoute(context.Background(), routeUUID, sampleRequest()))
	require.Equal(t, "/routes/"+routeUUID.String()+"/build", gotPath)
	require.Equal(t, "summer", gotBody["season"])
	points, ok := gotBody[PointsKey].([]any)
	require.True(t, ok)
	require.Len(t, points, 2)

	require.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	claims := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimPrefix(gotAuth, "Bearer "), &claims, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	}, jwt.WithAudience(tokenAudience), jwt.WithIssuer("tests"))
	require.NoError(t, err)
	require.Equal(t, routeUUID.String(), claims.Subject)

	require.Equal(t, []string{"http:ok"}, obs.calls)
}

func TestHTTPClientFailureAndBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(context.Background(), logger.Nop(), Config{
		Mode:               ModeHTTP,
		BaseURL:            srv.URL,
		BreakerFailures:    2,
		BreakerOpenTimeout: time.Minute,
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		err := client.BuildRoute(context.Background(), uuid.New(), sampleRequest())
		require.True(t, errors.Is(err, ErrUnavailable), "attempt %d: %v", i, err)
	}
	require.Equal(t, int32(2), hits.Load(), "breaker must stop calls after consecutive failures")
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(context.Background(), logger.Nop(), Config{Mode: ModeHTTP, BaseURL: url, Timeout: time.Second}, nil)
	require.NoError(t, err)
	err = client.BuildRoute(context.Background(), uuid.New(), sampleRequest())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRedisClientAppendsToStream(t *testing.T) {
	mr := miniredis.RunT(t)
	routeUUID := uuid.New()

	obs := &recordingObserver{}
	client, err := New(context.Background(), logger.Nop(), Config{
		Mode:      ModeRedis,
		RedisAddr: mr.Addr(),
		Stream:    "builds",
	}, obs)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.BuildRoute(context.Background(), routeUUID, sampleRequest()))

	entries, err := mr.Stream("builds")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := map[string]string{}
	for i := 0; i+1 < len(entries[0].Values); i += 2 {
		values[entries[0].Values[i]] = entries[0].Values[i+1]
	}
	require.Equal(t, routeUUID.String(), values["route_uuid"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(values["payload"]), &payload))
	require.Equal(t, "summer", payload["season"])
	require.Equal(t, []string{"redis:ok"}, obs.calls)
}

func TestConfigValidate(t *testing.T) {
	require.Error(t, Config{Mode: ModeHTTP}.Validate())
	require.Error(t, Config{Mode: "carrier-pigeon"}.Validate())
	require.NoError(t, Config{Mode: ModeNoop}.Validate())
	require.NoError(t, Config{Mode: ModeRedis, RedisAddr: "x:1", Stream: "s"}.Validate())
}

func TestNoopClient(t *testing.T) {
	client, err := New(context.Background(), logger.Nop(), Config{Mode: ModeNoop}, nil)
	require.NoError(t, err)
	require.NoError(t, client.BuildRoute(context.Background(), uuid.New(), sampleRequest()))
	require.NoError(t, client.Close())
}
