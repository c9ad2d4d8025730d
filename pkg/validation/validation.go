package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"spacebook/pkg/timeslot"

	"github.com/go-playground/validator/v10"
)

const (
	TagDate  = "date_ymd"
	TagClock = "clock_hhmm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// New returns a validator that reports fields by their json name and knows
// the date and time-of-day wire formats.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation(TagDate, validateDate); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagDate, err)
	}
	if err := v.RegisterValidation(TagClock, validateClock); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagClock, err)
	}
	return v, nil
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := timeslot.ParseDate(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := timeslot.ParseClock(fl.Field().String())
	return err == nil
}

// Struct validates s and converts validator failures into ValidationErrors.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return Translate(validationErrs)
		}
		return err
	}
	return nil
}

func Translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case TagDate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case TagClock:
			message = fmt.Sprintf("%s must be a time in HH:MM format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
