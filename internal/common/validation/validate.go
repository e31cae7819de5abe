package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

type ErrorValidateResponse struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e ErrorValidateResponse) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerNoSpecialCharacters()
	registerCurrencyCode()
	registerPeriod()
}

// ValidateStruct returns every violation of toValidate as a multierror of ErrorValidateResponse.
func ValidateStruct(toValidate interface{}) error {
	var errs *multierror.Error
	if err := validate.Struct(toValidate); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errs = multierror.Append(errs, ErrorValidateResponse{
				Message: err.Error(),
			})
			return errs.ErrorOrNil()
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				errs = multierror.Append(errs, ErrorValidateResponse{
					Field:   valErr.Field(),
					Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
				})
			}
		}
	}

	return errs.ErrorOrNil()
}

func registerNoSpecialCharacters() {
	pattern := regexp.MustCompile("^[a-zA-Z0-9_ ]*$")
	validate.RegisterValidation("nospecial", func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
}

func registerCurrencyCode() {
	validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		input := fl.Field().String()
		return input == "" || common.ValidateCurrencyCode(input)
	})
}

func registerPeriod() {
	pattern := regexp.MustCompile(`^\d{4}-\d{2}$`)
	validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		input := fl.Field().String()
		return input == "" || pattern.MatchString(input)
	})
}
