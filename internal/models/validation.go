package models

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"alfredoptarigan/bias-aware-recruitment/internal/reference"
)

// NewValidator returns a validator that knows the target_role and
// company_culture rules of the given reference tables.
func NewValidator(tables *reference.Tables) *validator.Validate {
	if tables == nil {
		tables = reference.Default()
	}

	validate := validator.New()
	roles := tables.Roles()
	cultures := tables.Cultures()

	// Registration only fails for empty tags or nil funcs.
	_ = validate.RegisterValidation("target_role", func(fl validator.FieldLevel) bool {
		return slices.Contains(roles, fl.Field().String())
	})
	_ = validate.RegisterValidation("company_culture", func(fl validator.FieldLevel) bool {
		return slices.Contains(cultures, fl.Field().String())
	})

	return validate
}

// ValidationMessage turns validator errors into a single client message.
func ValidationMessage(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		switch ve.Tag() {
		case "target_role", "company_culture":
			return fmt.Sprintf("validation error: %s - unknown value %q", ve.Field(), ve.Value())
		}
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
