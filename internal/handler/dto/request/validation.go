package request

import (
	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the booking-specific tags on gin's validator:
// hhmm (HH:MM, 24:00 allowed), isodate (YYYY-MM-DD) and weekdays (0=Monday..6=Sunday, non-empty).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errs.New("gin validator engine is not go-playground/validator")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"hhmm":     validateHHMM,
		"isodate":  validateISODate,
		"weekdays": validateWeekdays,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errs.Wrapf(err, "register %s", tag)
		}
	}
	return nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	_, err := calendar.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := calendar.ParseDate(fl.Field().String())
	return err == nil
}

func validateWeekdays(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}
	_, err := resource.NormalizeWeekdays(days)
	return err == nil
}
