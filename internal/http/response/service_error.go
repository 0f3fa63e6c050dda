package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/routesettings-backend/internal/platform/apierr"
	"github.com/yungbote/routesettings-backend/internal/services"
)

var errInternal = errors.New("internal server error")

// Status maps a service error to an HTTP status and error code. Errors it
// does not recognise get fallback.
func Status(err error, fallback int) (int, string) {
	if ae, ok := apierr.As(err); ok {
		return ae.Status, ae.Code
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, services.ErrProtected):
		return http.StatusBadRequest, "protected"
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, services.ErrGatewayUnavailable):
		return http.StatusBadGateway, "gateway_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	}
	if fallback >= http.StatusInternalServerError {
		return fallback, "internal_error"
	}
	return fallback, "bad_request"
}

// RespondServiceError writes the error envelope for err. Internal errors
// are reported without their text.
func RespondServiceError(c *gin.Context, fallback int, err error) {
	status, code := Status(err, fallback)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		_ = c.Error(err)
		RespondError(c, status, code, errInternal)
		return
	}
	RespondError(c, status, code, err)
}
