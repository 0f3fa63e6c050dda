package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/platform/apierr"
)

// Malformed path params are reported as 404, same as absent rows.
var (
	errRouteNotFound = apierr.NotFound("route not found")
	errPlaceNotFound = apierr.NotFound("place not found")
)

func badQuery(err error) error {
	return apierr.BadRequest("validation_error", err)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
