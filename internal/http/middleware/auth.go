package middleware

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/routesettings-backend/internal/domain"
	"github.com/yungbote/routesettings-backend/internal/platform/ctxutil"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/services"
)

// SessionUserKey holds the user id (string) in the session cookie.
const SessionUserKey = "user_id"

const (
	MethodBasic   = "basic"
	MethodSession = "session"
)

// Authenticator resolves request credentials to an active user.
type Authenticator interface {
	Basic(ctx context.Context, username, password string) (*types.User, error)
	Session(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

// SyncAuthenticator checks credentials on the request goroutine.
type SyncAuthenticator struct {
	Auth services.AuthService
}

func (a SyncAuthenticator) Basic(ctx context.Context, username, password string) (*types.User, error) {
	return a.Auth.Authenticate(ctx, username, password)
}

func (a SyncAuthenticator) Session(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return a.Auth.ActiveUser(ctx, userID)
}

// AsyncAuthenticator runs the same checks on the offload pool.
type AsyncAuthenticator struct {
	Auth services.AuthService
}

func (a AsyncAuthenticator) Basic(ctx context.Context, username, password string) (*types.User, error) {
	return await(ctx, a.Auth.AuthenticateAsync(ctx, username, password))
}

func (a AsyncAuthenticator) Session(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return await(ctx, a.Auth.ActiveUserAsync(ctx, userID))
}

func await(ctx context.Context, ch <-chan services.AuthResult) (*types.User, error) {
	select {
	case res := <-ch:
		return res.User, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type AuthMiddleware struct {
	log  *logger.Logger
	auth Authenticator
}

func NewAuthMiddleware(log *logger.Logger, auth Authenticator) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, auth: auth}
}

// RequireAuth accepts HTTP Basic credentials first and falls back to the
// session cookie.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if username, password, ok := c.Request.BasicAuth(); ok {
			u, err := am.auth.Basic(ctx, username, password)
			if err == nil && u != nil {
				am.attach(c, u, MethodBasic)
				return
			}
			if err != nil && !services.IsCredentialError(err) {
				am.log.Warn("basic auth failed", "error", err)
			}
		}

		if id, ok := sessionUserID(c); ok {
			u, err := am.auth.Session(ctx, id)
			if err == nil && u != nil {
				am.attach(c, u, MethodSession)
				return
			}
			am.log.Debug("session rejected", "user_id", id, "error", err)
		}

		unauthorized(c)
	}
}

func (am *AuthMiddleware) attach(c *gin.Context, u *types.User, method string) {
	ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
		UserID:     u.ID,
		Username:   u.Username,
		AuthMethod: method,
	})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func sessionUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := sessions.Default(c).Get(SessionUserKey).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": "unauthorized", "code": "unauthorized"},
	})
}
