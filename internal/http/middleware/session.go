package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type SessionConfig struct {
	Secret     string
	CookieName string
	Secure     bool
	MaxAge     int // seconds
}

// Sessions installs the signed cookie store used by /login/ and the
// session fallback of RequireAuth.
func Sessions(cfg SessionConfig) gin.HandlerFunc {
	name := cfg.CookieName
	if name == "" {
		name = "sessionid"
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 14 * 24 * 60 * 60
	}
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(name, store)
}
