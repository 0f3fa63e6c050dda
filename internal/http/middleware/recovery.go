package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"message": "internal server error", "code": "internal_error"},
		})
	})
}
