// Package validation applies declarative per-field transforms and rules to
// inbound payloads before they reach business logic.
package validation

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// Validator implements echo.Validator. It first runs the `mod` tag transforms
// (trim, lower, upper) over string fields, then validates the struct and
// aggregates every violation into a single 400 response.
type Validator struct {
	validate *validator.Validate
}

// New builds the shared validator instance.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	transform(i)

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, describe(fe))
	}

	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
		"message": messages,
		"error":   "Bad Request",
	})
}

// transform applies `mod` tag transforms in place. i must be a pointer to a
// struct, which is what echo's Bind hands over.
func transform(i interface{}) {
	rv := reflect.ValueOf(i)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for idx := 0; idx < rt.NumField(); idx++ {
		field := rv.Field(idx)
		mods := rt.Field(idx).Tag.Get("mod")
		if mods == "" || !field.CanSet() || field.Kind() != reflect.String {
			continue
		}

		value := field.String()
		for _, mod := range strings.Split(mods, ",") {
			switch mod {
			case "trim":
				value = innerWhitespace.ReplaceAllString(strings.TrimSpace(value), " ")
			case "lower":
				value = strings.ToLower(value)
			case "upper":
				value = strings.ToUpper(value)
			}
		}
		field.SetString(value)
	}
}

// describe renders a field error the way the API documents them.
func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be longer than or equal to %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be an email", field)
	case "uuid4":
		return fmt.Sprintf("%s must be a UUID", field)
	case "url":
		return fmt.Sprintf("%s must be a URL address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
