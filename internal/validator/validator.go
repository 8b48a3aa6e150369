// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Six-digit hex only; short #abc form is not accepted for category colors.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("recurring_frequency", validateRecurringFrequency)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "INCOME", "EXPENSE":
		return true
	}
	return false
}

func validateRecurringFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "WEEKLY", "MONTHLY", "YEARLY":
		return true
	}
	return false
}
