package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)
)

// Validator returns the shared validator with the form-specific tags registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("field_type", func(fl validator.FieldLevel) bool {
			return IsRegisteredFieldType(FieldType(fl.Field().String()))
		})
		_ = v.RegisterValidation("field_name", func(fl validator.FieldLevel) bool {
			return fieldNamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("email_list", func(fl validator.FieldLevel) bool {
			return ValidEmailList(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidEmailList accepts a comma separated list of addresses
func ValidEmailList(list string) bool {
	for _, addr := range strings.Split(list, ",") {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return false
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			return false
		}
	}
	return true
}

// validateStruct runs the struct tags and returns an attribute error map
func validateStruct(s interface{}) map[string][]string {
	errs := map[string][]string{}
	err := Validator().Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		appendError(errs, "_", err.Error())
		return errs
	}
	for _, fe := range verrs {
		appendError(errs, fe.Field(), messageFor(fe))
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be blank", fe.Field())
	case "max":
		return fmt.Sprintf("%s should contain at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be no less than %s", fe.Field(), fe.Param())
	case "field_type":
		return fmt.Sprintf("%s %q is not a registered field type", fe.Field(), fe.Value())
	case "field_name":
		return fmt.Sprintf("%s may only contain letters, digits, hyphens and underscores", fe.Field())
	case "email_list":
		return fmt.Sprintf("%s must be a comma separated list of email addresses", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func appendError(errs map[string][]string, field, msg string) {
	errs[field] = append(errs[field], msg)
}
