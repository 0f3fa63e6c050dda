package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/routesettings-backend/internal/http/middleware"
	"github.com/yungbote/routesettings-backend/internal/observability"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/services"
)

const (
	msgAuthenticated      = "User successfully authenticated"
	msgLoggedOut          = "User successfully logged out"
	msgInvalidCredentials = "Username or password is incorrect"
	msgInactiveAccount    = "User account is disabled"
)

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
	metrics     *observability.Metrics
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService, metrics: metrics}
}

// POST /login/
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response400(c, err.Error())
		return
	}

	user, err := ah.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if services.IsCredentialError(err) {
			outcome := loginOutcome(err)
			ah.metrics.IncLogin(outcome)
			if outcome == "inactive" {
				response400(c, msgInactiveAccount)
			} else {
				response400(c, msgInvalidCredentials)
			}
			return
		}
		ah.log.Error("login failed", "error", err)
		ah.metrics.IncLogin("error")
		c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: "internal server error"})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserKey, user.ID.String())
	if err := session.Save(); err != nil {
		ah.log.Error("save session failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: "internal server error"})
		return
	}
	ah.metrics.IncLogin("success")
	ah.log.Info("user logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, loginResponse{Success: true, Message: msgAuthenticated})
}

// POST /logout/
func (ah *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		ah.log.Error("clear session failed", "error", err)
		c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, loginResponse{Success: true, Message: msgLoggedOut})
}

func response400(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: msg})
}

func loginOutcome(err error) string {
	if errors.Is(err, services.ErrInactiveAccount) {
		return "inactive"
	}
	return "invalid"
}
