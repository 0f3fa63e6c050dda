package services

import (
	"errors"
	"fmt"

	dbpkg "github.com/yungbote/routesettings-backend/internal/data/db"
	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/platform/gateway"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrProtected       = errors.New("object is referenced and cannot be deleted")
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is disabled")

	ErrGatewayUnavailable = gateway.ErrUnavailable
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps store and filter errors onto the service sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dbpkg.ErrReferenced):
		return fmt.Errorf("%w: %v", ErrProtected, err)
	case errors.Is(err, dbpkg.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, filters.ErrInvalid):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}
