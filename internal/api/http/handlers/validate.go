package handlers

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

var validate = validator.New()

func validateStruct(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return nil
}
