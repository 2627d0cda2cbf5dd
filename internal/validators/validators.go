package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
)

// New returns a validator that reports JSON field names and knows the
// booking-specific tags:
//
//	isodate    YYYY-MM-DD calendar date
//	hhmm       HH:MM time of day
//	slotrange  HH:MM-HH:MM with start before end
//	singleline text without control characters such as CR or LF
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(availability.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("slotrange", func(fl validator.FieldLevel) bool {
		_, _, err := availability.ParseSlotLabel(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsControl) < 0
	})

	return v
}

// Struct validates s and converts failures into an httperr.ValidationError.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	return httperr.ErrValidation(Fields(ve))
}

// Fields renders each failure as a short message keyed by its namespaced JSON
// path without the root struct, e.g. "timeSlots[0].day".
func Fields(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		if _, exists := out[key]; !exists {
			out[key] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "isodate":
		return "must be a date formatted as YYYY-MM-DD"
	case "hhmm":
		return "must be a time formatted as HH:MM"
	case "slotrange":
		return "must be a time range formatted as HH:MM-HH:MM"
	case "singleline":
		return "must not contain control characters"
	case "gtfield":
		return "must be after " + fe.Param()
	default:
		return "is invalid"
	}
}
