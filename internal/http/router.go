package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/routesettings-backend/internal/http/handlers"
	httpMW "github.com/yungbote/routesettings-backend/internal/http/middleware"
	"github.com/yungbote/routesettings-backend/internal/http/templates"
	"github.com/yungbote/routesettings-backend/internal/observability"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

const APIPrefix = "/api/v1"

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// Dev mounts the API under /dev.
	Dev          bool
	CORSOrigins  []string
	Session      httpMW.SessionConfig
	LoginLimiter *httpMW.RateLimiter
	Tracing      bool
	ServiceName  string

	// SyncAuth guards ordinary endpoints, AsyncAuth the ones whose work
	// runs on the offload pool.
	SyncAuth  *httpMW.AuthMiddleware
	AsyncAuth *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	PlaceHandler     *httpH.PlaceHandler
	CriterionHandler *httpH.CriterionHandler
	RouteHandler     *httpH.RouteHandler
}

// BasePath is where the API is mounted.
func (cfg RouterConfig) BasePath() string {
	if cfg.Dev {
		return "/dev" + APIPrefix
	}
	return APIPrefix
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	if cfg.SyncAuth == nil || cfg.AsyncAuth == nil {
		return nil, fmt.Errorf("router: auth middleware is required")
	}

	r := gin.New()
	r.Use(httpMW.Recovery(log))
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.Sessions(cfg.Session))

	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Metrics stay at the root regardless of the dev prefix.
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.Dev {
		log.Warn("loaded in dev mode, all paths are under /dev")
	}

	api := r.Group(cfg.BasePath())
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.HealthCheck)
		}
		if cfg.AuthHandler != nil {
			login := []gin.HandlerFunc{}
			if cfg.LoginLimiter != nil {
				login = append(login, httpMW.RateLimit(log, cfg.LoginLimiter))
			}
			api.POST("/login/", append(login, cfg.AuthHandler.Login)...)
			api.POST("/logout/", cfg.AuthHandler.Logout)
		}
	}

	protected := api.Group("/")
	protected.Use(cfg.SyncAuth.RequireAuth())
	{
		if cfg.PlaceHandler != nil {
			protected.GET("/places", cfg.PlaceHandler.ListPlaces)
			protected.GET("/places/:id", cfg.PlaceHandler.GetPlace)
		}
		if cfg.CriterionHandler != nil {
			protected.GET("/criteria", cfg.CriterionHandler.ListCriteria)
		}
		if cfg.RouteHandler != nil {
			protected.GET("/routes", cfg.RouteHandler.ListRoutes)
			protected.GET("/routes/:uuid", cfg.RouteHandler.GetRoute)
			protected.POST("/routes/", cfg.RouteHandler.CreateRoute)
			protected.PUT("/routes/:uuid/", cfg.RouteHandler.ReplaceRoute)
			protected.PATCH("/routes/:uuid/", cfg.RouteHandler.PatchRoute)
			protected.GET("/routes/:uuid/guide/", cfg.RouteHandler.GetGuide)
		}
	}

	async := api.Group("/")
	async.Use(cfg.AsyncAuth.RequireAuth())
	{
		if cfg.RouteHandler != nil {
			async.DELETE("/routes/:uuid/", cfg.RouteHandler.DeleteRoute)
			async.POST("/routes/:uuid/build/", cfg.RouteHandler.BuildRoute)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found", "code": "not_found"}})
	})
	return r, nil
}
