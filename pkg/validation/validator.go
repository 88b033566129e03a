package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/OlexiiMelnik/app-users/pkg/types"
)

// MinAge is the registration age floor in whole calendar years.
const MinAge = 18

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Teaches the validator about types.Date.
// - Registers the birth-date rules: "past" and "ageover".
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs the custom rules on a validator instance.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(types.Date); ok {
			return d.Time
		}
		return nil
	}, types.Date{})
	_ = v.RegisterValidation("past", pastDate)
	_ = v.RegisterValidation("ageover", ageOver)
}

// pastDate requires the date to be strictly before today. A zero date
// passes; presence is the "required" rule's job.
func pastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	now := time.Now()
	today := types.NewDate(now.Year(), now.Month(), now.Day())
	return t.Before(today.Time)
}

// ageOver requires at least MinAge whole calendar years between the date
// and today. A birthday later in the current year than today does not
// count toward the elapsed years. A zero date passes vacuously.
func ageOver(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	return types.DateOf(t).YearsSince(time.Now()) >= MinAge
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if param != "" {
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			return "must be at most " + param + " characters long"
		}
		return "too large"
	case "eqfield":
		return "must be equal to " + param + " field"
	case "past":
		return "must be a date in the past"
	case "ageover":
		return fmt.Sprintf("age must be over %d", MinAge)
	case "e164":
		return "must be a valid phone number"
	case "datetime":
		if param != "" {
			return "must match datetime format: " + param
		}
		return "must be a valid datetime"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
