package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

var validate = validator.New()

// Validate runs struct tag validation and normalizes failures into the
// application error taxonomy.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
