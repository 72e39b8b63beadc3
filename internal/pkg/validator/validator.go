package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/Pesokrava/storefront/internal/domain"
)

// Shared validator instance to avoid creating multiple instances
var validate *validator.Validate

func init() {
	validate = validator.New()

	// sortorder accepts asc or desc in any case
	_ = validate.RegisterValidation("sortorder", func(fl validator.FieldLevel) bool {
		return domain.ValidOrder(fl.Field().String())
	})
}

// Struct validates v against its validate tags
func Struct(v any) error {
	return validate.Struct(v)
}
