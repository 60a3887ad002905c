package serverutils

import (
	"strings"

	"dating-app-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and folds field failures into one
// bad-request error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.BadRequest(apperror.CodeInvalidInput, "Invalid input")
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldErr.Field()+" failed on '"+fieldErr.Tag()+"'")
	}
	return apperror.BadRequest(apperror.CodeInvalidInput, strings.Join(messages, ", "))
}
