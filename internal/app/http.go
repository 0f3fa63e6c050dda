package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/routesettings-backend/internal/http"
	httpH "github.com/yungbote/routesettings-backend/internal/http/handlers"
	httpMW "github.com/yungbote/routesettings-backend/internal/http/middleware"
	"github.com/yungbote/routesettings-backend/internal/observability"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/platform/validate"
)

func wireRouter(db *gorm.DB, log *logger.Logger, cfg Config, svc Services, metrics *observability.Metrics) (*gin.Engine, error) {
	rc := routerConfig(db, log, cfg, svc, metrics)
	log.Info("Wiring router...", "base_path", rc.BasePath())
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validate.RegisterGin(); err != nil {
		return nil, err
	}
	return http.NewRouter(rc)
}

func routerConfig(db *gorm.DB, log *logger.Logger, cfg Config, svc Services, metrics *observability.Metrics) http.RouterConfig {
	return http.RouterConfig{
		Log:          log,
		Metrics:      metrics,
		Dev:          cfg.Dev(),
		CORSOrigins:  cfg.CORSOrigins,
		Session:      cfg.Session,
		LoginLimiter: httpMW.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst),
		Tracing:      cfg.TracingEnabled,
		ServiceName:  cfg.ServiceName,

		SyncAuth:  httpMW.NewAuthMiddleware(log, httpMW.SyncAuthenticator{Auth: svc.Auth}),
		AsyncAuth: httpMW.NewAuthMiddleware(log, httpMW.AsyncAuthenticator{Auth: svc.Auth}),

		HealthHandler:    httpH.NewHealthHandler(db),
		AuthHandler:      httpH.NewAuthHandler(log, svc.Auth, metrics),
		PlaceHandler:     httpH.NewPlaceHandler(log, svc.Place),
		CriterionHandler: httpH.NewCriterionHandler(log, svc.Criterion),
		RouteHandler: httpH.NewRouteHandlerWithDeps(httpH.RouteHandlerDeps{
			Log:    log,
			Routes: svc.Route,
			Builds: svc.Build,
			Guides: svc.Guide,
		}),
	}
}
