package accountdelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount validates that the bound amount string parses as a decimal number.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := decimal.NewFromString(s)
		return err == nil
	}

	return false
}
