package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// calday validates that a string field is a parseable "YYYY-MM-DD" day.
func calday(fl validator.FieldLevel) bool {
	_, err := domain.ParseCalendarDay(fl.Field().String())
	return err == nil
}

// RegisterValidations installs custom binding validations on gin's validator.
// Called once at startup before routes are registered.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("calday", calday)
}
