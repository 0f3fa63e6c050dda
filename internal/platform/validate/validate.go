// Package validate registers the domain validators shared by request
// binding and the admin seed loader.
package validate

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	types "github.com/yungbote/routesettings-backend/internal/domain"
)

var internalNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Register adds value_type, internal_name and notblank to v. Latitude and
// longitude ranges use the validator's built-in latitude and longitude tags.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("value_type", func(fl validator.FieldLevel) bool {
		return types.ValueType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("internal_name", func(fl validator.FieldLevel) bool {
		return internalNameRe.MatchString(fl.Field().String())
	})
}

var (
	stdOnce sync.Once
	std     *validator.Validate
	stdErr  error
)

// New returns a shared validator using the `validate` struct tag.
func New() (*validator.Validate, error) {
	stdOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		stdErr = Register(v)
		std = v
	})
	return std, stdErr
}

// RegisterGin adds the domain validators to gin's binding engine, which
// reads the `binding` struct tag.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}
