package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/routesettings-backend/internal/platform/apierr"
	"github.com/yungbote/routesettings-backend/internal/services"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		fallback int
		status   int
		code     string
	}{
		{"not found", fmt.Errorf("route x: %w", services.ErrNotFound), 500, 404, "not_found"},
		{"protected", services.ErrProtected, 400, 400, "protected"},
		{"validation", fmt.Errorf("%w: name", services.ErrValidation), 500, 400, "validation_error"},
		{"gateway", services.ErrGatewayUnavailable, 400, 502, "gateway_unavailable"},
		{"apierr", apierr.New(http.StatusTeapot, "teapot", errors.New("short")), 400, 418, "teapot"},
		{"unknown write", errors.New("boom"), 400, 400, "bad_request"},
		{"unknown read", errors.New("boom"), 500, 500, "internal_error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, code := Status(c.err, c.fallback)
			require.Equal(t, c.status, status)
			require.Equal(t, c.code, code)
		})
	}
}

func TestRespondServiceErrorHidesInternalText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondServiceError(c, http.StatusInternalServerError, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":{"message":"internal server error","code":"internal_error"}}`, rec.Body.String())
}

func TestRespondPageNeverNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondPage[int](c, 0, nil)

	require.JSONEq(t, `{"count":0,"items":[]}`, rec.Body.String())
}
