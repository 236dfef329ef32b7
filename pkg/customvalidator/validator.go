package customvalidator

import (
	"regexp"

	"procurement-system/internal/workflow"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations wires the project's custom validation rules
// into the given validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("e164_phone", isE164PhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	return nil
}

var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

func isE164PhoneNumber(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}

func isOrderStatus(fl validator.FieldLevel) bool {
	_, err := workflow.ParseStatus(fl.Field().String())
	return err == nil
}
